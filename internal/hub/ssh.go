package hub

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	corev1 "k8s.io/api/core/v1"
	"k8s.io/apimachinery/pkg/apis/meta/v1/unstructured"
	"k8s.io/apimachinery/pkg/runtime/schema"
)

// SSHReader reads the hub by running kubectl on a remote host and decoding
// its JSON output. It is the fallback transport for hubs whose API server
// is not directly routable from the operator's workstation.
type SSHReader struct {
	comm Communicator
}

// NewSSHReader creates a reader over the given communicator.
func NewSSHReader(comm Communicator) *SSHReader {
	return &SSHReader{comm: comm}
}

// kubectl error fragments that mean "absent", not "broken".
var notFoundFragments = []string{
	"the server doesn't have a resource type",
	"not found",
	"NotFound",
	"no matches for kind",
	"Forbidden",
}

func isKubectlNotFound(output string, err error) bool {
	text := output
	if err != nil {
		text += " " + err.Error()
	}
	for _, fragment := range notFoundFragments {
		if strings.Contains(text, fragment) {
			return true
		}
	}
	return false
}

// List implements Reader.
func (r *SSHReader) List(ctx context.Context, gvk schema.GroupVersionKind, namespace string) ([]unstructured.Unstructured, error) {
	cmd := fmt.Sprintf("kubectl get %s -o json", kubectlResource(gvk))
	if namespace != "" {
		cmd += " -n " + namespace
	} else {
		cmd += " --all-namespaces"
	}

	output, err := r.comm.Execute(ctx, cmd)
	if err != nil {
		if isKubectlNotFound(output, err) {
			return nil, notFound(err)
		}
		return nil, fmt.Errorf("failed to list %s via ssh: %w", gvk.Kind, err)
	}

	list := &unstructured.UnstructuredList{}
	if err := list.UnmarshalJSON([]byte(output)); err != nil {
		return nil, fmt.Errorf("failed to decode kubectl output for %s: %w", gvk.Kind, err)
	}
	return list.Items, nil
}

// Get implements Reader.
func (r *SSHReader) Get(ctx context.Context, gvk schema.GroupVersionKind, namespace, name string) (*unstructured.Unstructured, error) {
	cmd := fmt.Sprintf("kubectl get %s %s -o json", kubectlResource(gvk), name)
	if namespace != "" {
		cmd += " -n " + namespace
	}

	output, err := r.comm.Execute(ctx, cmd)
	if err != nil {
		if isKubectlNotFound(output, err) {
			return nil, notFound(err)
		}
		return nil, fmt.Errorf("failed to get %s %s via ssh: %w", gvk.Kind, name, err)
	}

	obj := &unstructured.Unstructured{}
	if err := obj.UnmarshalJSON([]byte(output)); err != nil {
		return nil, fmt.Errorf("failed to decode kubectl output for %s %s: %w", gvk.Kind, name, err)
	}
	return obj, nil
}

// CoreEvents implements Reader.
func (r *SSHReader) CoreEvents(ctx context.Context, namespace string) ([]corev1.Event, error) {
	cmd := fmt.Sprintf("kubectl get events -n %s -o json", namespace)

	output, err := r.comm.Execute(ctx, cmd)
	if err != nil {
		if isKubectlNotFound(output, err) {
			return nil, notFound(err)
		}
		return nil, fmt.Errorf("failed to list events via ssh: %w", err)
	}

	var list corev1.EventList
	if err := json.Unmarshal([]byte(output), &list); err != nil {
		return nil, fmt.Errorf("failed to decode kubectl events output: %w", err)
	}
	return list.Items, nil
}
