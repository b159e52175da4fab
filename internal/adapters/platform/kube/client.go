package kube

import (
	"k8s.io/client-go/kubernetes"
	"k8s.io/client-go/tools/clientcmd"

	"github.com/cloudtasker/state-converger/internal/config"
	"github.com/cloudtasker/state-converger/internal/errors"
)

// NewClientset builds a typed client from the usual kubeconfig loading
// chain (explicit path, KUBECONFIG, ~/.kube/config), honoring an optional
// context override.
func NewClientset(cfg *config.KubeConfig) (kubernetes.Interface, error) {
	if cfg == nil {
		cfg = &config.KubeConfig{}
	}

	loadingRules := clientcmd.NewDefaultClientConfigLoadingRules()
	if cfg.Kubeconfig != "" {
		loadingRules.ExplicitPath = cfg.Kubeconfig
	}
	overrides := &clientcmd.ConfigOverrides{}
	if cfg.Context != "" {
		overrides.CurrentContext = cfg.Context
	}

	restConfig, err := clientcmd.NewNonInteractiveDeferredLoadingClientConfig(loadingRules, overrides).ClientConfig()
	if err != nil {
		return nil, errors.WrapUserFacing(err, errors.CodePlatformAuth,
			"failed to load kubeconfig",
			"Check that a kubeconfig exists and the requested context is defined.")
	}

	clientset, err := kubernetes.NewForConfig(restConfig)
	if err != nil {
		return nil, errors.Wrap(err, errors.CodePlatformAPIError, "failed to create kubernetes client")
	}
	return clientset, nil
}

// ResolveNamespace picks the namespace for namespaced resources: the
// configured one, or "default".
func ResolveNamespace(cfg *config.KubeConfig) string {
	if cfg != nil && cfg.Namespace != "" {
		return cfg.Namespace
	}
	return "default"
}
