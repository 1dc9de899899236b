package kafka

import (
	"log"
	"net"
	"strconv"
	"time"

	"github.com/segmentio/kafka-go"

	"ms-checkout/internal/config"
)

// BootstrapTopics creates the checkout topics declared in config.
func BootstrapTopics(brokers []string, topics config.TopicConfig) error {
	return EnsureTopicsExist(brokers, []string{
		topics.TransactionCreated,
		topics.OrderConfirmed,
		topics.AuditTrail,
	})
}

// EnsureTopicsExist creates Kafka topics if they don't already exist
func EnsureTopicsExist(brokers []string, topics []string) error {
	// Connect to the first broker to create topics
	conn, err := kafka.Dial("tcp", brokers[0])
	if err != nil {
		return err
	}
	defer conn.Close()

	controller, err := conn.Controller()
	if err != nil {
		return err
	}
	controllerConn, err := kafka.Dial("tcp", controllerAddr(controller))
	if err != nil {
		return err
	}
	defer controllerConn.Close()

	// Create each topic
	for _, topic := range topics {
		topicConfigs := []kafka.TopicConfig{
			{
				Topic:             topic,
				NumPartitions:     1,
				ReplicationFactor: 1,
			},
		}

		err = controllerConn.CreateTopics(topicConfigs...)
		if err != nil {
			// If error contains "already exists", it's not a problem
			if err.Error() == "kafka server: topic already exists" {
				log.Printf("Topic %s already exists", topic)
				continue
			}
			log.Printf("Error creating topic %s: %v", topic, err)
			// Continue trying to create other topics even if one fails
		} else {
			log.Printf("Created topic: %s", topic)
		}
	}

	// Wait a moment for topics to be fully created
	time.Sleep(1 * time.Second)
	return nil
}

// controllerAddr is the dialable address of the cluster controller.
// Broker metadata carries host and port separately; dialing the bare
// host fails with "missing port in address".
func controllerAddr(broker kafka.Broker) string {
	return net.JoinHostPort(broker.Host, strconv.Itoa(broker.Port))
}
