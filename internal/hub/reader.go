// Package hub provides read-only access to the resources a hub cluster
// holds about a managed-cluster deployment.
//
// Two Reader implementations exist: KubeReader talks to the hub API
// directly through a kubeconfig, SSHReader executes kubectl on a remote
// host and decodes its JSON output. Providers only ever see the Reader
// interface.
package hub

import (
	"context"
	"errors"
	"fmt"

	corev1 "k8s.io/api/core/v1"
	"k8s.io/apimachinery/pkg/apis/meta/v1/unstructured"
	"k8s.io/apimachinery/pkg/runtime/schema"
)

// ErrNotFound marks the absence of a resource or of its whole API group.
// Providers treat it as "this source contributes zero records"; it never
// escalates past the provider boundary.
var ErrNotFound = errors.New("resource not found on hub")

// ErrTransport marks a failure of the transport itself: the hub cannot be
// reached or authenticated against at all. It is fatal for the whole
// aggregation.
var ErrTransport = errors.New("hub transport failure")

// IsNotFound reports whether err is the recoverable absence class.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}

// IsTransport reports whether err is the fatal transport class.
func IsTransport(err error) bool {
	return errors.Is(err, ErrTransport)
}

// Reader lists and gets hub resources as unstructured objects. All
// operations are read-only observations.
type Reader interface {
	// List returns all objects of the given kind in the namespace. An
	// empty namespace lists across all namespaces. Returns ErrNotFound
	// when the API group is not installed on the hub.
	List(ctx context.Context, gvk schema.GroupVersionKind, namespace string) ([]unstructured.Unstructured, error)

	// Get returns one object by name, or ErrNotFound.
	Get(ctx context.Context, gvk schema.GroupVersionKind, namespace, name string) (*unstructured.Unstructured, error)

	// CoreEvents returns the core/v1 events recorded in the namespace.
	CoreEvents(ctx context.Context, namespace string) ([]corev1.Event, error)
}

// notFound wraps cause into the ErrNotFound class, keeping the original
// error text for V(1) logging.
func notFound(cause error) error {
	return fmt.Errorf("%w: %v", ErrNotFound, cause)
}

// transportFailure wraps cause into the ErrTransport class.
func transportFailure(cause error) error {
	return fmt.Errorf("%w: %v", ErrTransport, cause)
}
