package metrics

import "github.com/prometheus/client_golang/prometheus"

// Prometheus metrics for the order pipeline
var (
	PedidosCriadosTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "pedidos_criados_total",
			Help: "Total number of orders created",
		},
	)

	StatusAtualizadosTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "pedidos_status_atualizados_total",
			Help: "Total number of order status updates",
		},
	)

	PlanilhaFalhasTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "planilha_falhas_total",
			Help: "Total number of failed spreadsheet mirror calls",
		},
	)

	NotificacaoFalhasTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "notificacao_falhas_total",
			Help: "Total number of failed IA notification calls",
		},
	)

	NotificacaoPuladasTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "notificacao_puladas_total",
			Help: "Total number of notifications skipped because the IA endpoint is not configured",
		},
	)
)

// Register registers all Prometheus metrics
func Register() {
	prometheus.MustRegister(PedidosCriadosTotal)
	prometheus.MustRegister(StatusAtualizadosTotal)
	prometheus.MustRegister(PlanilhaFalhasTotal)
	prometheus.MustRegister(NotificacaoFalhasTotal)
	prometheus.MustRegister(NotificacaoPuladasTotal)
}
