package notification

import "testing"

func TestDeactivationNoticeBuilder(t *testing.T) {
	notice := NewDeactivationNoticeBuilder("Professor Carlos", 2, 5).Build()

	want := "🔔 Rodada de desativação executada por Professor Carlos: 2 aluno(s) desativado(s), 5 em risco."
	if notice != want {
		t.Errorf("Build() = %q, esperado %q", notice, want)
	}
}

func TestMelodyServiceWithoutInstance(t *testing.T) {
	service := NewMelodyService(nil)
	if err := service.SendMessage("oi"); err == nil {
		t.Error("SendMessage() com melody nil deveria falhar")
	}
}
