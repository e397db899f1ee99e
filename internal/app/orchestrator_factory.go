package app

import (
	"github.com/vladislavdragonenkov/checkout/internal/messaging/kafka"
	"github.com/vladislavdragonenkov/checkout/internal/service/placement"
)

// createOrchestrator создаёт оркестратор оформления с или без Kafka
// в зависимости от наличия kafka producer.
func createOrchestrator(
	deps *Dependencies,
	policy placement.Policy,
	kafkaProducer *kafka.Producer,
) placement.Orchestrator {
	if kafkaProducer != nil {
		return placement.NewOrchestratorWithKafka(
			deps.Orders,
			deps.Timeline,
			deps.Inventory,
			deps.Payments,
			deps.Shipping,
			policy,
			kafkaProducer,
			deps.Logger,
		)
	}

	return placement.NewOrchestrator(
		deps.Orders,
		deps.Timeline,
		deps.Inventory,
		deps.Payments,
		deps.Shipping,
		policy,
		deps.Logger,
	)
}
