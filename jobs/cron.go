package jobs

import (
	"log"
	"time"

	"academy/utils"

	"github.com/robfig/cron/v3"
)

// StudentDeactivator roda a política de desativação por faltas. A
// implementação fica em services; o job só conhece este contrato.
type StudentDeactivator interface {
	RunDeactivation(executedBy string, now time.Time) error
}

var studentDeactivator StudentDeactivator

// SetStudentDeactivator configura a implementação usada pelo job noturno.
func SetStudentDeactivator(deactivator StudentDeactivator) {
	studentDeactivator = deactivator
}

// InitCronJobs registra e inicia os jobs agendados.
func InitCronJobs(c *cron.Cron) error {
	// Rodada de desativação à meia-noite, todo dia.
	_, err := c.AddFunc("0 0 * * *", func() {
		now := time.Now()
		utils.LogInfo("Rodando a política de desativação por faltas: %v", now)
		if studentDeactivator == nil {
			utils.LogError("StudentDeactivator não configurado")
			return
		}
		if err := studentDeactivator.RunDeactivation("sistema", now); err != nil {
			utils.LogError("Erro na rodada de desativação: %v", err)
		}
	})
	if err != nil {
		return err
	}

	c.Start()
	log.Println("Cron jobs initialized successfully")
	return nil
}
