package domain

// Method represents a shipping destination with its fee and constraints.
type Method struct {
	// ID is the shipping method identifier.
	ID string `json:"id"`
	// Destination is the delivery area name.
	Destination string `json:"destination"`
	// PickupStation is the pickup point within the destination.
	PickupStation string `json:"pickupStation"`
	// DistanceKm is the distance from the warehouse in kilometres.
	DistanceKm float64 `json:"distanceKm"`
	// Amount is the shipping fee in KES.
	Amount float64 `json:"amount"`
	// DeliveryTime is the human-readable delivery estimate.
	DeliveryTime string `json:"deliveryTime"`
	// CODAvailable reports whether cash on delivery is offered here.
	CODAvailable bool `json:"codAvailable"`
}
