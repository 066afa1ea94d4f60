// Package host defines the contract between the agentflow-media plugin and
// the host agent framework: the plugin lifecycle, the capabilities the host
// can invoke, long-lived services, HTTP routes, and the message/response
// types exchanged through the host's callback mechanism.
//
// The host consumes these interfaces; the plugin implements them. Keeping the
// contract typed (rather than ad hoc object shapes) lets the compiler verify
// that the plugin conforms to what the host expects.
package host
