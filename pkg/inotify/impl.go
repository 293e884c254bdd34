/*
 * Copyright (c) 2023-present unTill Pro, Ltd.
 */

package inotify

import (
	"fmt"

	"github.com/untillpro/goutils/logger"
	"github.com/wneessen/go-mail"

	"github.com/voedger/triggers/pkg/itriggers"
)

type mailNotifier struct {
	params ParamsType
}

func (n *mailNotifier) Send(notifications []itriggers.Notification) error {
	for _, notification := range notifications {
		msg := mail.NewMsg()
		msg.Subject(notification.Subject)
		if err := msg.From(n.params.From); err != nil {
			return err
		}
		if err := msg.To(notification.Recipient); err != nil {
			return err
		}
		msg.SetBodyString(mail.TypeTextPlain, notification.Body)
		msg.SetCharset(mail.CharsetUTF8)

		opts := []mail.Option{
			mail.WithPort(n.params.Port),
			mail.WithUsername(n.params.Username),
			mail.WithPassword(n.params.Password),
			mail.WithSMTPAuth(mail.SMTPAuthPlain),
		}
		if n.params.NoTLS {
			opts = append(opts, mail.WithTLSPolicy(mail.NoTLS))
		}

		logger.Info(fmt.Sprintf("send mail '%s' from '%s' to '%s'", notification.Subject, n.params.From, notification.Recipient))

		c, err := mail.NewClient(n.params.Host, opts...)
		if err != nil {
			return err
		}
		if err := c.DialAndSend(msg); err != nil {
			return err
		}

		logger.Info(fmt.Sprintf("mail '%s' from '%s' to '%s' successfully sent", notification.Subject, n.params.From, notification.Recipient))
	}
	return nil
}

// logNotifier logs notifications instead of delivering them. Used when no
// mail service is configured
type logNotifier struct{}

func (n *logNotifier) Send(notifications []itriggers.Notification) error {
	for _, notification := range notifications {
		logger.Info(fmt.Sprintf("notification '%s' to '%s': %s", notification.Subject, notification.Recipient, notification.Body))
	}
	return nil
}
