package metrics

import "github.com/prometheus/client_golang/prometheus"

func init() {
	register(
		telegramCommandsTotal,
		telegramCallbacksTotal,
		telegramRateLimitedTotal,
		telegramSendErrorsTotal,
	)
}

var (
	telegramCommandsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "telegram_commands_received_total",
			Help: "Counts incoming commands from users.",
		},
		[]string{"command"},
	)

	telegramCallbacksTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "telegram_callbacks_received_total",
			Help: "Counts inline button presses by callback kind.",
		},
		[]string{"kind"},
	)

	telegramRateLimitedTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "telegram_rate_limit_triggered_total",
			Help: "Total number of times users have been rate-limited.",
		},
	)

	telegramSendErrorsTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "telegram_send_errors_total",
			Help: "Messages the Bot API refused or that failed in transit.",
		},
	)
)

func IncTelegramCommand(command string) {
	telegramCommandsTotal.WithLabelValues(norm(command)).Inc()
}

// IncTelegramCallback counts a callback; unknown payloads are folded into "unknown".
func IncTelegramCallback(kind string) {
	if kind == "" {
		kind = "unknown"
	}
	telegramCallbacksTotal.WithLabelValues(norm(kind)).Inc()
}

func IncRateLimitTriggered() {
	telegramRateLimitedTotal.Inc()
}

func IncTelegramSendError() {
	telegramSendErrorsTotal.Inc()
}
