/*
 * Copyright (c) 2023-present unTill Pro, Ltd.
 */

package inotify

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/voedger/triggers/pkg/inotify/smtptest"
	"github.com/voedger/triggers/pkg/itriggers"
)

func TestBasicUsage(t *testing.T) {
	require := require.New(t)

	// start the test SMTP server and send one notification through it
	server, err := smtptest.NewServer(smtptest.WithCredentials("user", "pwd"))
	require.NoError(err)
	defer func() { require.NoError(server.Close()) }()

	notifier := Provide(ParamsType{
		Host:     "127.0.0.1",
		Port:     int(server.Port()),
		Username: "user",
		Password: "pwd",
		From:     "robot@example.org",
		NoTLS:    true,
	})

	require.NoError(notifier.Send([]itriggers.Notification{{
		Recipient: "sales@example.org",
		Subject:   "Rating changed",
		Body:      "Account rating went cold",
	}}))

	msg := <-server.Messages("user", "pwd")
	require.Equal("Rating changed", msg.Subject)
	require.Equal("robot@example.org", msg.From)
	require.Equal([]string{"sales@example.org"}, msg.To)
	require.Contains(msg.Body, "Account rating went cold")
}

func TestSendErrors(t *testing.T) {
	require := require.New(t)

	t.Run("must fail with wrong credentials", func(t *testing.T) {
		server, err := smtptest.NewServer(smtptest.WithCredentials("user", "pwd"))
		require.NoError(err)
		defer func() { require.NoError(server.Close()) }()

		notifier := Provide(ParamsType{
			Host:     "127.0.0.1",
			Port:     int(server.Port()),
			Username: "user",
			Password: "wrong",
			From:     "robot@example.org",
			NoTLS:    true,
		})
		require.Error(notifier.Send([]itriggers.Notification{{Recipient: "sales@example.org"}}))
	})

	t.Run("must fail on invalid from address", func(t *testing.T) {
		notifier := Provide(ParamsType{Host: "127.0.0.1", Port: 25, From: "not an address"})
		require.Error(notifier.Send([]itriggers.Notification{{Recipient: "sales@example.org"}}))
	})
}

func TestLogNotifier(t *testing.T) {
	require := require.New(t)

	// never fails, only logs
	require.NoError(ProvideLogNotifier().Send([]itriggers.Notification{{
		Recipient: "sales@example.org",
		Subject:   "Rating changed",
	}}))
}
