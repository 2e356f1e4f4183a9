package status

import "idleverse/internal/app/view"

type Request struct {
	PlayerID string
}

type Response struct {
	Player view.PlayerView `json:"player"`
	// HorizonTicks is the distance to the next simulation event;
	// HorizonActive false means nothing will happen on its own.
	HorizonTicks  int  `json:"horizon_ticks"`
	HorizonActive bool `json:"horizon_active"`
}
