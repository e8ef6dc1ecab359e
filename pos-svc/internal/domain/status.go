package domain

import "errors"

var ErrUnknownStatus = errors.New("unknown order status")

type Status string

const (
	StatusPending   Status = "pending"
	StatusPreparing Status = "preparing"
	StatusReady     Status = "ready"
	StatusDelivered Status = "delivered"
)

// Statuses lists the fulfillment pipeline in board order.
var Statuses = []Status{StatusPending, StatusPreparing, StatusReady, StatusDelivered}

var statusLabels = map[Status]string{
	StatusPending:   "Pendente",
	StatusPreparing: "Em preparo",
	StatusReady:     "Pronto",
	StatusDelivered: "Entregue",
}

func (s Status) Valid() bool {
	_, ok := statusLabels[s]
	return ok
}

func (s Status) Label() string {
	return statusLabels[s]
}

// Next returns the following pipeline stage. Delivered has none.
func (s Status) Next() (Status, bool) {
	for i, candidate := range Statuses {
		if candidate == s && i < len(Statuses)-1 {
			return Statuses[i+1], true
		}
	}
	return "", false
}

func ParseStatus(raw string) (Status, error) {
	status := Status(raw)
	if !status.Valid() {
		return "", ErrUnknownStatus
	}
	return status, nil
}
