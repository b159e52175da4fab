package gcp

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	compute "google.golang.org/api/compute/v1"

	"github.com/cloudtasker/state-converger/internal/core/domain"
)

func strPtr(s string) *string { return &s }

func TestProjectInstance(t *testing.T) {
	instance := &compute.Instance{
		Name:        "web-1",
		Status:      "RUNNING",
		Zone:        "https://www.googleapis.com/compute/v1/projects/p/zones/us-central1-a",
		MachineType: "https://www.googleapis.com/compute/v1/projects/p/zones/us-central1-a/machineTypes/n1-standard-1",
		Metadata: &compute.Metadata{
			Items: []*compute.MetadataItems{
				{Key: "db", Value: strPtr("postgres")},
				{Key: "empty", Value: nil},
			},
		},
		Tags: &compute.Tags{Items: []string{"http-server"}},
		Disks: []*compute.AttachedDisk{
			{Index: 1, Source: "projects/p/zones/us-central1-a/disks/data"},
			{Index: 0, Source: "projects/p/zones/us-central1-a/disks/web-1"},
			{Index: 2},
		},
		NetworkInterfaces: []*compute.NetworkInterface{
			{
				Network:   "projects/p/global/networks/default",
				NetworkIP: "10.240.0.2",
				AccessConfigs: []*compute.AccessConfig{
					{NatIP: "104.155.0.1"},
				},
			},
		},
	}

	info := projectInstance(instance, "debian-7-wheezy-v20150703")

	expected := map[string]any{
		domain.KeyName:                "web-1",
		domain.KeyStatus:              "RUNNING",
		domain.InstanceImageKey:       "debian-7-wheezy-v20150703",
		domain.InstanceMachineTypeKey: "n1-standard-1",
		domain.InstanceZoneKey:        "us-central1-a",
		domain.InstanceNetworkKey:     "default",
		domain.InstancePrivateIPKey:   "10.240.0.2",
		domain.InstancePublicIPKey:    "104.155.0.1",
		domain.InstanceTagsKey:        []string{"http-server"},
		domain.InstanceMetadataKey:    map[string]string{"db": "postgres", "empty": ""},
		// Disks come back ordered by attachment index; a sourceless
		// disk is scratch.
		domain.InstanceDisksKey: []string{"web-1", "data", "scratch"},
	}
	if diff := cmp.Diff(expected, info); diff != "" {
		t.Errorf("projected info mismatch (-want +got):\n%s", diff)
	}
}

func TestProjectInstanceSparse(t *testing.T) {
	info := projectInstance(&compute.Instance{Name: "bare"}, "")

	assert.Equal(t, "bare", info[domain.KeyName])
	assert.Nil(t, info[domain.KeyStatus])
	assert.Nil(t, info[domain.InstanceImageKey])
	assert.Nil(t, info[domain.InstanceNetworkKey])
	assert.Nil(t, info[domain.InstancePrivateIPKey])
	assert.Nil(t, info[domain.InstancePublicIPKey])
	assert.Equal(t, []string{}, info[domain.InstanceTagsKey])
	assert.Equal(t, map[string]string{}, info[domain.InstanceMetadataKey])
	assert.Equal(t, []string{}, info[domain.InstanceDisksKey])
}

func TestRawToAttachedDisk(t *testing.T) {
	attached, err := rawToAttachedDisk(map[string]any{
		"autoDelete": true,
		"boot":       true,
		"initializeParams": map[string]any{
			"sourceImage": "projects/debian-cloud/global/images/debian-8",
			"diskSizeGb":  20,
		},
	})

	require.NoError(t, err)
	assert.True(t, attached.AutoDelete)
	assert.True(t, attached.Boot)
	require.NotNil(t, attached.InitializeParams)
	assert.Equal(t, int64(20), attached.InitializeParams.DiskSizeGb)
	assert.Equal(t, "projects/debian-cloud/global/images/debian-8", attached.InitializeParams.SourceImage)
}

func TestLastSegment(t *testing.T) {
	assert.Equal(t, "n1-standard-1", lastSegment("projects/p/zones/z/machineTypes/n1-standard-1"))
	assert.Equal(t, "plain", lastSegment("plain"))
	assert.Equal(t, "", lastSegment(""))
}
