package container_test

import (
	"fmt"

	"github.com/km-arc/go-inject/framework/container"
)

type Service struct {
	Name string
	Peer container.Lazy[*Peer]
}

type Peer struct{ Service *Service }

func Example() {
	c := container.New()
	_ = c.Instance("config", &Config{DSN: "postgres://localhost/app"})
	_ = c.RegisterSingleton("logger", container.Class(NewLogger))
	_ = c.RegisterSingleton("db", container.Class(NewDatabase, "config", "logger"))

	db, err := container.Resolve[*Database](c, "db")
	if err != nil {
		fmt.Println(err)
		return
	}
	fmt.Println(db.Config.DSN, db.Logger.Name)
	// Output: postgres://localhost/app default
}

func Example_circular() {
	c := container.New()
	_ = c.RegisterSingleton("service", container.Class(func(p container.Lazy[*Peer]) *Service {
		return &Service{Name: "svc", Peer: p}
	}, "peer"))
	_ = c.RegisterSingleton("peer", container.Class(func(s *Service) *Peer {
		return &Peer{Service: s}
	}, "service"))

	peer := container.MustResolve[*Peer](c, "peer")
	fmt.Println(peer.Service.Name, peer.Service.Peer.Get() == peer)
	// Output: svc true
}

func Example_notRegistered() {
	c := container.New()
	_, err := c.Get("Unknown")
	fmt.Println(err)
	// Output: container: not registered: "Unknown"
}
