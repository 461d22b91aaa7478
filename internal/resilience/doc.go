// Package resilience groups fault tolerance for calls to the placeholder API.
//
// The circuitbreaker subpackage wraps github.com/sony/gobreaker. There is no
// retry: a failed fetch degrades to absent data and the next user action
// fetches again.
//
//	cb := circuitbreaker.New(circuitbreaker.UpstreamAPIConfig())
//	result, err := cb.Execute(func() (interface{}, error) {
//	    return fetchUsers(ctx)
//	})
package resilience
