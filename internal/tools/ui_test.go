package tools

import (
	"context"
	"testing"
)

func TestShowNotification(t *testing.T) {
	client := &fakeClient{}
	tool := NewShowNotificationTool(client)

	res, err := tool.Handle(context.Background(), callReq("show_notification", map[string]any{
		"message":  "Stand up!",
		"type":     "SUCCESS",
		"duration": float64(5000),
	}))
	if err != nil {
		t.Fatal(err)
	}
	if got := resultText(t, res); got != "Notification sent" {
		t.Errorf("text = %q", got)
	}
	if len(client.notified) != 1 {
		t.Fatalf("sent %d notifications, want 1", len(client.notified))
	}
	n := client.notified[0]
	if n.Message != "Stand up!" || n.Type != "SUCCESS" || n.Duration != 5000 {
		t.Errorf("config = %+v", n)
	}
}

func TestShowNotification_DefaultsToInfo(t *testing.T) {
	client := &fakeClient{}
	tool := NewShowNotificationTool(client)

	if _, err := tool.Handle(context.Background(), callReq("show_notification", map[string]any{
		"message": "hi",
	})); err != nil {
		t.Fatal(err)
	}
	if client.notified[0].Type != "INFO" {
		t.Errorf("type = %q, want INFO", client.notified[0].Type)
	}
}

func TestShowNotification_MessageRequired(t *testing.T) {
	tool := NewShowNotificationTool(&fakeClient{})
	res, err := tool.Handle(context.Background(), callReq("show_notification", nil))
	wantError(t, res, err)
}

func TestShowSnack_ConfigPassesThrough(t *testing.T) {
	client := &fakeClient{}
	tool := NewShowSnackTool(client)

	res, err := tool.Handle(context.Background(), callReq("show_snack", map[string]any{
		"message": "Saved",
		"config":  map[string]any{"ico": "check", "actionStr": "Undo"},
	}))
	if err != nil {
		t.Fatal(err)
	}
	if got := resultText(t, res); got != "Snack shown" {
		t.Errorf("text = %q", got)
	}
	snack := client.snacks[0]
	if snack.Config["ico"] != "check" || snack.Config["actionStr"] != "Undo" {
		t.Errorf("config = %v, want it forwarded unchanged", snack.Config)
	}
}

func TestOpenDialog_ReturnsAnswer(t *testing.T) {
	client := &fakeClient{dialogResult: []byte(`{"confirmed":false}`)}
	tool := NewOpenDialogTool(client)

	res, err := tool.Handle(context.Background(), callReq("open_dialog", map[string]any{
		"message":     "Delete everything?",
		"type":        "CONFIRM",
		"confirmText": "Yes",
	}))
	if err != nil {
		t.Fatal(err)
	}
	var got struct {
		Confirmed bool `json:"confirmed"`
	}
	decodeResult(t, res, &got)
	if got.Confirmed {
		t.Error("confirmed = true, want the app's false answer")
	}
	d := client.dialogs[0]
	if d.Message != "Delete everything?" || d.ConfirmText != "Yes" {
		t.Errorf("dialog config = %+v", d)
	}
}

func TestOpenDialog_EmptyAnswerMeansConfirmed(t *testing.T) {
	tool := NewOpenDialogTool(&fakeClient{})

	res, err := tool.Handle(context.Background(), callReq("open_dialog", map[string]any{
		"message": "Proceed?",
	}))
	if err != nil {
		t.Fatal(err)
	}
	var got struct {
		Confirmed bool `json:"confirmed"`
	}
	decodeResult(t, res, &got)
	if !got.Confirmed {
		t.Error("confirmed = false, want true when the app sends no body")
	}
}
