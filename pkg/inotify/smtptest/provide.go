/*
 * Copyright (c) 2023-present unTill Pro, Ltd.
 */

package smtptest

import (
	"net"

	"github.com/emersion/go-smtp"
)

// NewServer starts a test SMTP server on a free localhost port
func NewServer(opts ...Option) (Server, error) {
	s := &server{
		messages: make(map[credentials]chan Message),
	}
	for _, opt := range opts {
		opt(s)
	}

	srv := smtp.NewServer(&backend{server: s})
	srv.Domain = "localhost"
	srv.AllowInsecureAuth = true
	s.server = srv

	ln, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		return nil, err
	}
	s.port = int32(ln.Addr().(*net.TCPAddr).Port)

	go func() {
		_ = srv.Serve(ln)
	}()

	return s, nil
}
