/*
Copyright 2025 Stride Team

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

	http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/

package notify

import (
	"context"
	"fmt"
	"net/smtp"
	"strings"
)

// Smtp holds the outbound mail server configuration.
type Smtp struct {
	Host     string `toml:"host" mapstructure:"host"`
	Port     int    `toml:"port" mapstructure:"port"`
	From     string `toml:"from" mapstructure:"from"`
	Username string `toml:"username" mapstructure:"username"`
	Password string `toml:"password" mapstructure:"password"`
}

func (s *Smtp) Validate() error {
	if s.Host == "" {
		return fmt.Errorf("smtp host is required")
	}
	if s.Port <= 0 {
		return fmt.Errorf("smtp port is required")
	}
	if s.From == "" {
		return fmt.Errorf("smtp from address is required")
	}
	return nil
}

// Mail is a single outbound message.
type Mail struct {
	To      []string
	Subject string
	Body    string
}

// Mailer delivers a message to its recipients.
type Mailer interface {
	Send(ctx context.Context, mail Mail) error
}

// SMTPMailer sends mail over plain SMTP with basic auth.
type SMTPMailer struct {
	conf Smtp
}

func NewSMTPMailer(conf Smtp) *SMTPMailer {
	return &SMTPMailer{conf: conf}
}

func (m *SMTPMailer) Send(ctx context.Context, mail Mail) error {
	if err := m.conf.Validate(); err != nil {
		return err
	}
	if len(mail.To) == 0 {
		return fmt.Errorf("mail recipients are required")
	}

	msg := "From: " + m.conf.From + "\r\n" +
		"To: " + strings.Join(mail.To, ",") + "\r\n" +
		"Subject: " + mail.Subject + "\r\n" +
		"\r\n" + mail.Body

	var auth smtp.Auth
	if m.conf.Username != "" {
		auth = smtp.PlainAuth("", m.conf.Username, m.conf.Password, m.conf.Host)
	}

	addr := fmt.Sprintf("%s:%d", m.conf.Host, m.conf.Port)
	if err := smtp.SendMail(addr, auth, m.conf.From, mail.To, []byte(msg)); err != nil {
		return fmt.Errorf("failed to send email: %w", err)
	}
	return nil
}
