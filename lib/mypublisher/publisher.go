package mypublisher

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/MarcGrol/benefitcheckout/lib/myevents"
	"github.com/MarcGrol/benefitcheckout/lib/mypubsub"
	"github.com/MarcGrol/benefitcheckout/lib/mytime"
)

type publisher struct {
	pubsub    mypubsub.PubSub
	enveloper enveloper
}

func New(pubsub mypubsub.PubSub, nower mytime.Nower) Publisher {
	return &publisher{
		pubsub:    pubsub,
		enveloper: newEnveloper(nower),
	}
}

func (p *publisher) Publish(c context.Context, topic string, event myevents.Event) error {
	envelope, err := p.enveloper.do(topic, event)
	if err != nil {
		return fmt.Errorf("error creating envelope: %s", err)
	}

	jsonBytes, err := json.Marshal(envelope)
	if err != nil {
		return fmt.Errorf("error serializing envelope %s: %s", envelope, err)
	}

	err = p.pubsub.Publish(c, topic, string(jsonBytes))
	if err != nil {
		return fmt.Errorf("error publishing envelope %s: %s", envelope, err)
	}

	return nil
}
