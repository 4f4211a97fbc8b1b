// Copyright (c) Qualcomm Technologies, Inc. and/or its subsidiaries.
// SPDX-License-Identifier: BSD-3-Clause-Clear

// Package upstream is the typed REST client for the tracking server the
// monitor consumes. Session handling beyond a static bearer token is the
// server operator's concern, not ours.
package upstream

import (
	"log/slog"
	"net/http"
	"strings"
	"time"
)

// requestTimeout caps every REST call. The pollers run forever; a stalled
// upstream must fail the fetch, not wedge them.
const requestTimeout = 30 * time.Second

type Api struct {
	URL string

	Client *http.Client
}

func NewClient(url, token string) *Api {
	return &Api{
		URL: strings.TrimRight(url, "/"),

		Client: &http.Client{
			Timeout: requestTimeout,
			Transport: &authTransport{
				Token:     token,
				Transport: http.DefaultTransport,
			},
		},
	}
}

// SocketURL derives the push channel endpoint from the REST base URL.
func (a Api) SocketURL() string {
	url := a.URL + "/api/socket"
	if after, ok := strings.CutPrefix(url, "https:"); ok {
		return "wss:" + after
	}
	if after, ok := strings.CutPrefix(url, "http:"); ok {
		return "ws:" + after
	}
	return url
}

// AuthHeader returns the headers the push channel handshake needs.
func (a Api) AuthHeader() http.Header {
	if t, ok := a.Client.Transport.(*authTransport); ok && t.Token != "" {
		return http.Header{"Authorization": []string{"Bearer " + t.Token}}
	}
	return nil
}

type authTransport struct {
	Token     string
	Transport http.RoundTripper
}

// RoundTrip implements the http.RoundTripper interface in a way which adds
// the Authorization header to each request.
func (t *authTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	reqBodyClosed := false
	if req.Body != nil {
		defer func() {
			if !reqBodyClosed {
				if err := req.Body.Close(); err != nil {
					slog.Error("failed to close request body", "error", err)
				}
			}
		}()
	}

	req2 := req.Clone(req.Context())
	req2.Header.Set("Authorization", "Bearer "+t.Token)

	// req.Body is assumed to be closed by the base RoundTripper.
	reqBodyClosed = true
	return t.Transport.RoundTrip(req2)
}
