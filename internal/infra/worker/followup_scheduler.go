package worker

import (
	"context"
	"time"

	"github.com/xavierca1/painel-crm/internal/infra/logger"
)

type Dispatcher interface {
	DispatchDue(ctx context.Context, agora time.Time) (int, error)
	SendDailyReports(ctx context.Context, dia time.Time) (int, error)
}

// Locker garante que só uma instância processa cada tick.
type Locker interface {
	TryLock(ctx context.Context, name string, ttl time.Duration) (bool, error)
}

// FollowUpScheduler dispara os follow-ups vencidos a cada tick e manda o
// relatório diário uma vez por dia a partir de ReportHour.
type FollowUpScheduler struct {
	dispatcher   Dispatcher
	locker       Locker
	tickInterval time.Duration
	reportHour   int
	now          func() time.Time

	lastReport string
}

func NewFollowUpScheduler(d Dispatcher, l Locker, tick time.Duration, reportHour int) *FollowUpScheduler {
	if tick <= 0 {
		tick = time.Minute
	}
	return &FollowUpScheduler{
		dispatcher:   d,
		locker:       l,
		tickInterval: tick,
		reportHour:   reportHour,
		now:          time.Now,
	}
}

func (s *FollowUpScheduler) Start(ctx context.Context) {
	log := logger.WithComponent("followup-scheduler")
	log.Infof("🕒 Agendador de follow-up iniciado (tick %s)", s.tickInterval)

	ticker := time.NewTicker(s.tickInterval)
	defer ticker.Stop()

	s.tick(ctx)

	for {
		select {
		case <-ctx.Done():
			log.Info("⚠️ Agendador de follow-up encerrado")
			return
		case <-ticker.C:
			s.tick(ctx)
		}
	}
}

func (s *FollowUpScheduler) tick(ctx context.Context) {
	agora := s.now()
	log := logger.WithComponent("followup-scheduler")

	if s.acquire(ctx, "followup:"+agora.Format("200601021504"), s.tickInterval) {
		n, err := s.dispatcher.DispatchDue(ctx, agora)
		if err != nil {
			log.WithError(err).Error("❌ Erro ao disparar follow-ups")
		} else if n > 0 {
			log.Infof("✅ %d follow-up(s) enfileirados", n)
		}
	}

	s.maybeReport(ctx, agora)
}

func (s *FollowUpScheduler) maybeReport(ctx context.Context, agora time.Time) {
	dia := agora.Format("20060102")
	if agora.Hour() < s.reportHour || s.lastReport == dia {
		return
	}

	log := logger.WithComponent("relatorio")
	ok, err := s.tryLock(ctx, "relatorio:"+dia, 24*time.Hour)
	if err != nil {
		log.WithError(err).Warnf("⚠️ Falha ao pegar lock do relatório de %s, tentando de novo no próximo tick", dia)
		return
	}
	s.lastReport = dia
	// lock ocupado: outra instância já cuida do relatório de hoje.
	if !ok {
		return
	}

	n, err := s.dispatcher.SendDailyReports(ctx, agora)
	if err != nil {
		log.WithError(err).Error("❌ Erro ao enviar relatórios diários")
		return
	}
	log.Infof("📧 %d relatório(s) de follow-up enviados", n)
}

// tryLock sem Locker configurado sempre consegue (instância única).
func (s *FollowUpScheduler) tryLock(ctx context.Context, name string, ttl time.Duration) (bool, error) {
	if s.locker == nil {
		return true, nil
	}
	return s.locker.TryLock(ctx, name, ttl)
}

func (s *FollowUpScheduler) acquire(ctx context.Context, name string, ttl time.Duration) bool {
	ok, err := s.tryLock(ctx, name, ttl)
	if err != nil {
		logger.WithComponent("followup-scheduler").WithError(err).Warnf("⚠️ Falha ao pegar lock %s, pulando", name)
		return false
	}
	return ok
}
