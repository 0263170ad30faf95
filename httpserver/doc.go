/*
Package httpserver implements the HTTP server of the enclave signing service.

Signing endpoints are contributed by handlers implementing api.RouteRegistrar
(see api/votehandler) and run behind request logging and a per-client rate
limit. The server itself adds:

  - GET /get_public_key - scheme and hex public key of the process signer
  - GET /health_check - status and public key
  - GET /livez, /readyz - liveness and readiness
  - GET /drain, /undrain - toggle readiness for load balancer draining
  - /debug/pprof - when enabled

Metrics are served on a separate listener by a metrics.MetricsServer.
*/
package httpserver
