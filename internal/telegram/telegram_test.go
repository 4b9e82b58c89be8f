package telegram

import (
	"strings"
	"testing"
)

func TestDecodeUpdate_TextMessage(t *testing.T) {
	body := `{
		"update_id": 10,
		"message": {
			"message_id": 1,
			"from": {"id": 42, "is_bot": false, "first_name": "Ana"},
			"chat": {"id": 42, "type": "private"},
			"date": 1715760000,
			"text": "Mercado 120"
		}
	}`

	in, err := DecodeUpdate(strings.NewReader(body))
	if err != nil {
		t.Fatalf("DecodeUpdate failed: %v", err)
	}
	if in == nil {
		t.Fatal("got nil inbound for a text message")
	}
	if in.ChatID != 42 || in.UserID != "42" || in.Text != "Mercado 120" {
		t.Errorf("decoded %+v", in)
	}
	if in.IsCommand {
		t.Error("plain text decoded as command")
	}
}

func TestDecodeUpdate_Command(t *testing.T) {
	body := `{
		"update_id": 11,
		"message": {
			"message_id": 2,
			"from": {"id": 42, "is_bot": false, "first_name": "Ana"},
			"chat": {"id": 42, "type": "private"},
			"date": 1715760000,
			"text": "/resumo semana",
			"entities": [{"type": "bot_command", "offset": 0, "length": 7}]
		}
	}`

	in, err := DecodeUpdate(strings.NewReader(body))
	if err != nil {
		t.Fatalf("DecodeUpdate failed: %v", err)
	}
	if !in.IsCommand || in.Command != "resumo" || in.Args != "semana" {
		t.Errorf("decoded %+v, want command resumo with args semana", in)
	}
}

func TestDecodeUpdate_NonMessageUpdate(t *testing.T) {
	in, err := DecodeUpdate(strings.NewReader(`{"update_id": 12}`))
	if err != nil {
		t.Fatalf("DecodeUpdate failed: %v", err)
	}
	if in != nil {
		t.Errorf("non-message update decoded to %+v, want nil", in)
	}
}

func TestDecodeUpdate_BadJSON(t *testing.T) {
	if _, err := DecodeUpdate(strings.NewReader("{nope")); err == nil {
		t.Error("malformed body must fail")
	}
}
