package util

import (
	"net/http"
	"net/url"
)

// NewProxyFunc returns the proxy selector for page fetches.
// Explicit proxies win; otherwise HTTP_PROXY/HTTPS_PROXY/NO_PROXY from the environment apply.
func NewProxyFunc(httpProxy, httpsProxy string) func(*http.Request) (*url.URL, error) {
	if httpProxy == "" && httpsProxy == "" {
		return http.ProxyFromEnvironment
	}

	return func(req *http.Request) (*url.URL, error) {
		if req.URL.Scheme == "https" && httpsProxy != "" {
			return url.Parse(httpsProxy)
		}
		if httpProxy != "" {
			return url.Parse(httpProxy)
		}
		return http.ProxyFromEnvironment(req)
	}
}
