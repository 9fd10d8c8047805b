package email

import (
	"net"
	"net/textproto"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"episolve/apperr"
)

// smtpServer accepts one session and sends the DATA payload on the
// returned channel.
func smtpServer(t *testing.T) (SMTPConfig, <-chan string) {
	t.Helper()
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	t.Cleanup(func() { ln.Close() })

	got := make(chan string, 1)
	go func() {
		conn, err := ln.Accept()
		if err != nil {
			return
		}
		defer conn.Close()
		tp := textproto.NewConn(conn)
		tp.PrintfLine("220 test ESMTP")
		for {
			line, err := tp.ReadLine()
			if err != nil {
				return
			}
			switch verb := strings.ToUpper(strings.Fields(line + " x")[0]); verb {
			case "EHLO", "HELO":
				tp.PrintfLine("250 test")
			case "MAIL", "RCPT":
				tp.PrintfLine("250 ok")
			case "DATA":
				tp.PrintfLine("354 go ahead")
				data, err := tp.ReadDotBytes()
				if err != nil {
					return
				}
				got <- string(data)
				tp.PrintfLine("250 queued")
			case "QUIT":
				tp.PrintfLine("221 bye")
				return
			default:
				tp.PrintfLine("502 unsupported")
			}
		}
	}()

	host, port, err := net.SplitHostPort(ln.Addr().String())
	require.NoError(t, err)
	return SMTPConfig{Host: host, Port: port, Timeout: 5 * time.Second}, got
}

func headerLines(data string) []string {
	head, _, _ := strings.Cut(data, "\n\n")
	return strings.Split(head, "\n")
}

func TestSMTPSender_Delivers(t *testing.T) {
	cfg, got := smtpServer(t)

	err := NewSMTPSender(cfg).Send(t.Context(), Message{
		From:    "Episolve <notifications@episolve.com>",
		To:      "team@episolve.com",
		Subject: "New Lead: Ann",
		HTML:    "<p>hello</p>",
	})
	require.NoError(t, err)

	data := <-got
	assert.Contains(t, headerLines(data), "Subject: New Lead: Ann")
	assert.Contains(t, headerLines(data), "To: <team@episolve.com>")
	assert.Contains(t, data, "<p>hello</p>")
}

func TestSMTPSender_HeaderValuesStayOnOneLine(t *testing.T) {
	cfg, got := smtpServer(t)

	err := NewSMTPSender(cfg).Send(t.Context(), Message{
		From:    "Episolve <notifications@episolve.com>",
		To:      "team@episolve.com",
		Subject: "New Lead: Bob\r\nBcc: victim@example.com",
		HTML:    "<p>x</p>",
	})
	require.NoError(t, err)

	lines := headerLines(<-got)
	assert.Len(t, lines, 5)
	for _, line := range lines {
		assert.False(t, strings.HasPrefix(line, "Bcc:"), "unexpected header %q", line)
	}
}

func TestBuildMessage_RejectsBadRecipient(t *testing.T) {
	_, _, _, err := buildMessage(Message{From: "a@b.co", To: "x@y\r\nBcc: z@w"})
	assert.True(t, apperr.IsIntegration(err))
}

func TestSMTPSender_StalledServerTimesOut(t *testing.T) {
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	stop := make(chan struct{})
	t.Cleanup(func() {
		close(stop)
		ln.Close()
	})
	go func() {
		conn, err := ln.Accept()
		if err != nil {
			return
		}
		<-stop
		conn.Close()
	}()

	host, port, err := net.SplitHostPort(ln.Addr().String())
	require.NoError(t, err)
	s := NewSMTPSender(SMTPConfig{Host: host, Port: port, Timeout: 200 * time.Millisecond})

	start := time.Now()
	err = s.Send(t.Context(), Message{From: "a@b.co", To: "c@d.co", Subject: "x", HTML: "x"})
	assert.True(t, apperr.IsIntegration(err))
	assert.Less(t, time.Since(start), 5*time.Second)
}
