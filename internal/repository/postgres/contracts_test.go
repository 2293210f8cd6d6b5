package postgres

import (
	"github.com/FelipeBaeza/PrestaBancoEntrega/internal/auth"
	catalogdomain "github.com/FelipeBaeza/PrestaBancoEntrega/internal/domain/catalog"
	clientdomain "github.com/FelipeBaeza/PrestaBancoEntrega/internal/domain/client"
	evaluationdomain "github.com/FelipeBaeza/PrestaBancoEntrega/internal/domain/evaluation"
	requestdomain "github.com/FelipeBaeza/PrestaBancoEntrega/internal/domain/request"
	"github.com/FelipeBaeza/PrestaBancoEntrega/internal/jobs"
	"github.com/FelipeBaeza/PrestaBancoEntrega/internal/ws"
)

var (
	_ clientdomain.Repository        = (*ClientRepository)(nil)
	_ catalogdomain.Repository       = (*CatalogRepository)(nil)
	_ requestdomain.Repository       = (*RequestRepository)(nil)
	_ requestdomain.ClientDirectory  = (*ClientRepository)(nil)
	_ requestdomain.OutboxRepository = (*OutboxRepository)(nil)
	_ evaluationdomain.Repository    = (*EvaluationRepository)(nil)
	_ jobs.OutboxRepository          = (*OutboxRepository)(nil)
	_ ws.RealtimeRepository          = (*EventsRepository)(nil)
	_ auth.Repository                = (*SessionRepository)(nil)
)
