package transactions

const TopicName = "transactions"

// TransactionRecorded is published after a completed checkout is appended to the transaction store.
type TransactionRecorded struct {
	SessionID     string
	Email         string
	Amount        float64
	Type          string
	Currency      string
	PaymentStatus string
}

func (e TransactionRecorded) GetEventTypeName() string {
	return "transaction.recorded"
}

func (e TransactionRecorded) GetAggregateName() string {
	return e.SessionID
}
