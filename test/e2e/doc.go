// Package e2e runs the conduit server end to end: every test gets its own postgres container
// and an in-process server on a free port (see internal/testenv).
//
// Docker is required. The API tests run with:
//
//	go test -tags=e2e -v ./test/e2e
//
// The browser tests additionally need a webdriver (e.g. chromedriver or a selenium
// standalone container) at WEBDRIVER_URL (default http://localhost:4444) and the front-end
// build at TESTENV_STATIC_DIR:
//
//	HEADLESS=1 TESTENV_STATIC_DIR=$PWD/frontend/build go test -tags=browser -v ./test/e2e
//
// By default the server logs are not included in the test output, you can enable them with:
//
//	ENABLE_SERVER_LOGS=true go test -tags=e2e -v ./test/e2e
package e2e
