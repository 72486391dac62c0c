package bus

import "testing"

func TestDecode(t *testing.T) {
	msg, err := Decode(`{"type":"REMINDER_ACKNOWLEDGED","reminder_id":"r1"}`)

	if err != nil {
		t.Fatal(err)
	}

	if msg.Type != TypeReminderAcknowledged || msg.ReminderID != "r1" {
		t.Errorf("Unexpected message: %+v", msg)
	}
}

func TestDecodeWithoutReminderID(t *testing.T) {
	msg, err := Decode(`{"type":"CHECK_REMINDERS"}`)

	if err != nil {
		t.Fatal(err)
	}

	if msg.Type != TypeCheckReminders || msg.ReminderID != "" {
		t.Errorf("Unexpected message: %+v", msg)
	}
}

func TestDecodeToleratesUnknownFields(t *testing.T) {
	msg, err := Decode(`{"type":"CHECK_REMINDERS","sent_by":"future-version","extra":42}`)

	if err != nil {
		t.Fatal(err)
	}

	if msg.Type != TypeCheckReminders {
		t.Errorf("Unexpected message: %+v", msg)
	}
}

func TestDecodeRejectsGarbage(t *testing.T) {
	if _, err := Decode("not json"); err == nil {
		t.Error("Expected error for invalid JSON, got none")
	}

	if _, err := Decode(`{"reminder_id":"r1"}`); err == nil {
		t.Error("Expected error for missing type, got none")
	}
}
