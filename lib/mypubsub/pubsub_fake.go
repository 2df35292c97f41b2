package mypubsub

import (
	"context"
	"sync"
)

// FakePubSub keeps every published message in memory so local runs and tests can inspect them.
type FakePubSub struct {
	sync.Mutex
	messages map[string][]string
}

func NewFakePubSub() *FakePubSub {
	return &FakePubSub{
		messages: map[string][]string{},
	}
}

func (ps *FakePubSub) CreateTopic(c context.Context, topic string) error {
	ps.Lock()
	defer ps.Unlock()

	if _, found := ps.messages[topic]; !found {
		ps.messages[topic] = []string{}
	}
	return nil
}

func (ps *FakePubSub) Publish(c context.Context, topic string, data string) error {
	ps.Lock()
	defer ps.Unlock()

	ps.messages[topic] = append(ps.messages[topic], data)
	return nil
}

func (ps *FakePubSub) Messages(topic string) []string {
	ps.Lock()
	defer ps.Unlock()

	return append([]string{}, ps.messages[topic]...)
}
