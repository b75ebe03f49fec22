package registry

import (
	"strings"

	"k8s.io/apimachinery/pkg/runtime/schema"
)

const (
	// Group is the API group of the kube-ovn CRDs.
	Group = "kubeovn.io"
	// Version is the served version of the kube-ovn CRDs.
	Version = "v1"
)

// Resource describes one CRD kind served by the console API. The plural
// name is the URL path segment; the kind is what goes in manifests.
type Resource struct {
	Plural     string `json:"plural"`
	Kind       string `json:"kind"`
	Namespaced bool   `json:"namespaced"`
}

// Resources lists every kind the console serves, in the order their
// watch subscriptions are opened. All kube-ovn kinds are cluster-scoped;
// Namespaced is recorded for kinds that may grow a namespace later.
var Resources = []Resource{
	{Plural: "vpcs", Kind: "Vpc"},
	{Plural: "subnets", Kind: "Subnet"},
	{Plural: "ippools", Kind: "IpPool"},
	{Plural: "ips", Kind: "IP"},
	{Plural: "iptables-dnat-rules", Kind: "IptablesDnatRule"},
	{Plural: "iptables-eips", Kind: "IptablesEIP"},
	{Plural: "iptables-fip-rules", Kind: "IptablesFIPRule"},
	{Plural: "iptables-snat-rules", Kind: "IptablesSnatRule"},
	{Plural: "ovn-dnat-rules", Kind: "OvnDnatRule"},
	{Plural: "ovn-eips", Kind: "OvnEip"},
	{Plural: "ovn-fips", Kind: "OvnFip"},
	{Plural: "ovn-snat-rules", Kind: "OvnSnatRule"},
	{Plural: "provider-networks", Kind: "ProviderNetwork"},
	{Plural: "qos-policies", Kind: "QoSPolicy"},
	{Plural: "security-groups", Kind: "SecurityGroup"},
	{Plural: "switch-lb-rules", Kind: "SwitchLBRule"},
	{Plural: "vips", Kind: "Vip"},
	{Plural: "vlans", Kind: "Vlan"},
	{Plural: "vpc-dnses", Kind: "VpcDns"},
	{Plural: "vpc-nat-gateways", Kind: "VpcNatGateway"},
}

var byPlural = func() map[string]Resource {
	m := make(map[string]Resource, len(Resources))
	for _, r := range Resources {
		m[r.Plural] = r
	}
	return m
}()

// IsKnown reports whether plural names a resource the console serves.
func IsKnown(plural string) bool {
	_, ok := byPlural[plural]
	return ok
}

// SingularKindName returns the manifest Kind for a plural name. A plural
// without a table entry falls back to capitalising its first letter,
// which gives the wrong answer for irregular plurals ("vpc-dnses");
// every served kind has an explicit entry, so the fallback only matters
// for kinds added to Resources without one.
func SingularKindName(plural string) string {
	if r, ok := byPlural[plural]; ok {
		return r.Kind
	}
	if plural == "" {
		return plural
	}
	return strings.ToUpper(plural[:1]) + plural[1:]
}

// GroupVersionResource returns the GVR the dynamic client uses for a
// plural name.
func GroupVersionResource(plural string) schema.GroupVersionResource {
	return schema.GroupVersionResource{Group: Group, Version: Version, Resource: plural}
}

// APIVersion is the apiVersion field of every manifest the console
// constructs.
func APIVersion() string {
	return Group + "/" + Version
}

// Plurals returns the plural names of every served resource, in
// registration order.
func Plurals() []string {
	ps := make([]string, len(Resources))
	for i, r := range Resources {
		ps[i] = r.Plural
	}
	return ps
}
