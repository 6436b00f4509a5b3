package utils

import (
	"bufio"
	"bytes"
	"errors"
	"fmt"
	"io"
	"mime"
	"mime/multipart"
	"net/mail"
	"strings"
)

// ErrNoTextContent is returned when a multipart message has no text/plain part
var ErrNoTextContent = errors.New("no text content found in multipart message")

// MessageText is the readable content of an RFC 5322 message
type MessageText struct {
	From    string
	Subject string
	Body    string
}

// Text joins the subject and body the way a person would paste them
func (m MessageText) Text() string {
	if m.Subject == "" {
		return m.Body
	}
	return m.Subject + "\n\n" + m.Body
}

// ReadMessageText parses a message and extracts its text/plain content
func ReadMessageText(r io.Reader) (*MessageText, error) {
	msg, err := mail.ReadMessage(bufio.NewReader(r))
	if err != nil {
		return nil, fmt.Errorf("failed to parse message: %w", err)
	}

	body, err := extractTextFromMessage(msg)
	if err != nil {
		return nil, err
	}

	return &MessageText{
		From:    msg.Header.Get("From"),
		Subject: msg.Header.Get("Subject"),
		Body:    strings.TrimSpace(body),
	}, nil
}

// extractTextFromMessage returns the body of a single-part message, or the
// concatenated text/plain parts of a multipart one
func extractTextFromMessage(msg *mail.Message) (string, error) {
	mediaType, params, err := mime.ParseMediaType(msg.Header.Get("Content-Type"))
	if err != nil || !strings.HasPrefix(mediaType, "multipart/") || params["boundary"] == "" {
		bodyBytes, err := io.ReadAll(msg.Body)
		if err != nil {
			return "", fmt.Errorf("failed to read message body: %w", err)
		}
		return string(bodyBytes), nil
	}

	var textContent bytes.Buffer
	if err := collectTextParts(multipart.NewReader(msg.Body, params["boundary"]), &textContent); err != nil && textContent.Len() == 0 {
		return "", fmt.Errorf("failed to read multipart message: %w", err)
	}

	if textContent.Len() == 0 {
		return "", ErrNoTextContent
	}
	return textContent.String(), nil
}

func collectTextParts(mr *multipart.Reader, out *bytes.Buffer) error {
	for {
		part, err := mr.NextPart()
		if err == io.EOF {
			return nil
		}
		if err != nil {
			return err
		}

		mediaType, params, err := mime.ParseMediaType(part.Header.Get("Content-Type"))
		if err != nil {
			// parts without a content type default to text/plain
			mediaType = "text/plain"
		}

		switch {
		case mediaType == "text/plain":
			partBytes, err := io.ReadAll(part)
			if err != nil {
				continue
			}
			out.Write(partBytes)
			out.WriteString("\n")
		case strings.HasPrefix(mediaType, "multipart/") && params["boundary"] != "":
			if err := collectTextParts(multipart.NewReader(part, params["boundary"]), out); err != nil {
				return err
			}
		}
	}
}
