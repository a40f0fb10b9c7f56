package mongo

import (
	"context"
	"sync"
	"time"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type MongoDB struct {
	Client *mongo.Client
	Ctx    context.Context
	Cancel context.CancelFunc
	URL    string

	once    sync.Once
	connErr error
}

func NewMongoDB(url string) *MongoDB {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	return &MongoDB{
		Ctx:    ctx,
		Cancel: cancel,
		URL:    url,
	}
}

// Connect dials at most once; later calls return the first attempt's result.
func (m *MongoDB) Connect() error {
	m.once.Do(func() {
		client, err := mongo.Connect(m.Ctx, options.Client().ApplyURI(m.URL))
		if err != nil {
			m.connErr = err
			return
		}
		m.Client = client
		m.connErr = m.Client.Ping(m.Ctx, nil)
	})
	return m.connErr
}

func (m *MongoDB) Disconnect() error {
	m.Cancel()
	if m.Client == nil {
		return nil
	}
	return m.Client.Disconnect(context.Background())
}

func (m *MongoDB) GetContext() context.Context {
	return m.Ctx
}
