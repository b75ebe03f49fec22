package http

const (
	ListResources = "ListResources"
	ListObjects   = "ListObjects"
	CreateObject  = "CreateObject"

	// The subnet and VPC NAT gateway routes predate the generic ones
	// and are kept for clients that still use them. They must stay
	// registered ahead of PatchObject/DeleteObject: both can match the
	// same path, and the specific route wins.
	PatchSubnet         = "PatchSubnet"
	PatchVpcNatGateway  = "PatchVpcNatGateway"
	PatchObject         = "PatchObject"
	DeleteSubnet        = "DeleteSubnet"
	DeleteVpcNatGateway = "DeleteVpcNatGateway"
	DeleteObject        = "DeleteObject"

	WatchEvents = "WatchEvents"
	Metrics     = "Metrics"
)
