// Package testenv runs a test body against a disposable conduit environment.
//
// For every run the Controller
//   - starts a postgres container holding an empty database named after the test
//   - starts the server in-process on an OS assigned loopback port and waits for the port to be announced
//   - builds the clients the body asked for (HTTP client, webdriver session)
//   - runs the body in its own goroutine so that a panic or t.FailNow cannot skip teardown
//   - stops the server, then the database (no grace period), then the browser session
//
// Concurrent runs share nothing: each has its own container, port and clients.
//
// Tests normally use the testing adapter:
//
//	func TestLogin(t *testing.T) {
//		testenv.Run(t, func(t *testing.T, rc *testenv.RunContext) {
//			resp, err := rc.HTTP.Post(rc.URL+"/api/users/login", "application/json", body)
//			...
//		})
//	}
//
// Docker is required. Server logs are discarded unless ENABLE_SERVER_LOGS=true.
package testenv
