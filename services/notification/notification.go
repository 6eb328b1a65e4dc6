package notification

import (
	"fmt"

	"github.com/olahol/melody"
)

type Service interface {
	SendMessage(message string) error
}

type MelodyService struct {
	m *melody.Melody
}

func NewMelodyService(m *melody.Melody) *MelodyService {
	return &MelodyService{m: m}
}

func (s *MelodyService) SendMessage(message string) error {
	if s.m == nil {
		return fmt.Errorf("melody instance is nil")
	}
	return s.m.Broadcast([]byte(message))
}

// DeactivationNoticeBuilder monta o aviso enviado aos dashboards após uma
// rodada de desativação automática.
type DeactivationNoticeBuilder struct {
	executedBy  string
	deactivated int
	atRisk      int
}

func NewDeactivationNoticeBuilder(executedBy string, deactivated, atRisk int) *DeactivationNoticeBuilder {
	return &DeactivationNoticeBuilder{
		executedBy:  executedBy,
		deactivated: deactivated,
		atRisk:      atRisk,
	}
}

func (b *DeactivationNoticeBuilder) Build() string {
	return fmt.Sprintf("🔔 Rodada de desativação executada por %s: %d aluno(s) desativado(s), %d em risco.",
		b.executedBy, b.deactivated, b.atRisk)
}
