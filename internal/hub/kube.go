package hub

import (
	"context"
	"fmt"

	corev1 "k8s.io/api/core/v1"
	apierrors "k8s.io/apimachinery/pkg/api/errors"
	"k8s.io/apimachinery/pkg/api/meta"
	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"
	"k8s.io/apimachinery/pkg/apis/meta/v1/unstructured"
	"k8s.io/apimachinery/pkg/runtime/schema"
	"k8s.io/client-go/kubernetes"
	"k8s.io/client-go/tools/clientcmd"
	"sigs.k8s.io/controller-runtime/pkg/client"
)

// KubeReader reads the hub through its API server.
type KubeReader struct {
	client    client.Client
	clientset kubernetes.Interface
}

// NewKubeReader creates a reader from a kubeconfig file. An empty path
// falls back to the standard loading rules (KUBECONFIG, ~/.kube/config).
// Errors here are the transport-failure class: nothing can be observed.
func NewKubeReader(kubeconfigPath string) (*KubeReader, error) {
	loadingRules := clientcmd.NewDefaultClientConfigLoadingRules()
	if kubeconfigPath != "" {
		loadingRules.ExplicitPath = kubeconfigPath
	}
	config, err := clientcmd.NewNonInteractiveDeferredLoadingClientConfig(
		loadingRules, &clientcmd.ConfigOverrides{}).ClientConfig()
	if err != nil {
		return nil, transportFailure(fmt.Errorf("failed to load kubeconfig: %w", err))
	}

	c, err := client.New(config, client.Options{})
	if err != nil {
		return nil, transportFailure(fmt.Errorf("failed to create hub client: %w", err))
	}

	clientset, err := kubernetes.NewForConfig(config)
	if err != nil {
		return nil, transportFailure(fmt.Errorf("failed to create clientset: %w", err))
	}

	return &KubeReader{client: c, clientset: clientset}, nil
}

// List implements Reader.
func (r *KubeReader) List(ctx context.Context, gvk schema.GroupVersionKind, namespace string) ([]unstructured.Unstructured, error) {
	list := &unstructured.UnstructuredList{}
	list.SetGroupVersionKind(schema.GroupVersionKind{
		Group:   gvk.Group,
		Version: gvk.Version,
		Kind:    gvk.Kind + "List",
	})

	var opts []client.ListOption
	if namespace != "" {
		opts = append(opts, client.InNamespace(namespace))
	}
	if err := r.client.List(ctx, list, opts...); err != nil {
		if meta.IsNoMatchError(err) || apierrors.IsNotFound(err) || apierrors.IsForbidden(err) {
			return nil, notFound(err)
		}
		return nil, transportFailure(fmt.Errorf("failed to list %s in %q: %w", gvk.Kind, namespace, err))
	}
	return list.Items, nil
}

// Get implements Reader.
func (r *KubeReader) Get(ctx context.Context, gvk schema.GroupVersionKind, namespace, name string) (*unstructured.Unstructured, error) {
	obj := &unstructured.Unstructured{}
	obj.SetGroupVersionKind(gvk)
	key := client.ObjectKey{Namespace: namespace, Name: name}
	if err := r.client.Get(ctx, key, obj); err != nil {
		if meta.IsNoMatchError(err) || apierrors.IsNotFound(err) || apierrors.IsForbidden(err) {
			return nil, notFound(err)
		}
		return nil, transportFailure(fmt.Errorf("failed to get %s %s/%s: %w", gvk.Kind, namespace, name, err))
	}
	return obj, nil
}

// CoreEvents implements Reader.
func (r *KubeReader) CoreEvents(ctx context.Context, namespace string) ([]corev1.Event, error) {
	events, err := r.clientset.CoreV1().Events(namespace).List(ctx, metav1.ListOptions{})
	if err != nil {
		if apierrors.IsNotFound(err) || apierrors.IsForbidden(err) {
			return nil, notFound(err)
		}
		return nil, transportFailure(fmt.Errorf("failed to list events in %q: %w", namespace, err))
	}
	return events.Items, nil
}
