// Package httpclient sends outbound HTTP requests with retry, exponential
// backoff and an optional circuit breaker.
//
// URL templates use :name segments filled from Options.Params:
//
//	client := httpclient.New(httpclient.WithLogger(log))
//	resp := client.Request(ctx, httpclient.Options{
//		Method: http.MethodGet,
//		URL:    "http://users.internal/users/:id",
//		Params: map[string]string{"id": id},
//	})
//	if !resp.OK() {
//		// resp.Status and resp.Data carry the upstream failure
//	}
//
// By default a request is retried up to three times while the upstream
// answers 429. Transport failures never return a Go error: Request
// synthesizes a 500 Response with Err set so callers can relay it.
//
// RequestAll fans out several requests and keeps their order.
package httpclient
