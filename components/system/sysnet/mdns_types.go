package sysnet

import "strings"

// MdnsServiceType represents known mDNS service types.
//
// References:
//   - See common services: http://www.dns-sd.org/serviceTypes.html
//   - https://datatracker.ietf.org/doc/html/rfc6763
type MdnsServiceType int

const (
	// MdnsServiceTypeNTP is used for a Network Time Protocol service.
	MdnsServiceTypeNTP MdnsServiceType = iota

	// MdnsServiceTypeHTTP is used for a HTTP service.
	MdnsServiceTypeHTTP
)

// String returns string representation of the mDNS service type.
func (s MdnsServiceType) String() string {
	switch s {
	case MdnsServiceTypeNTP:
		return "_ntp"
	case MdnsServiceTypeHTTP:
		return "_http"
	default:
		return "<none>"
	}
}

// MdnsProto represents known transport protocols.
type MdnsProto int

const (
	// MdnsProtoUDP is used for application protocols that run over UDP.
	MdnsProtoUDP MdnsProto = iota

	// MdnsProtoTCP is used for application protocols that run over TCP.
	MdnsProtoTCP
)

// String returns string representation of the mDNS protocol.
func (p MdnsProto) String() string {
	switch p {
	case MdnsProtoUDP:
		return "_udp"
	case MdnsProtoTCP:
		return "_tcp"
	default:
		return "<none>"
	}
}

// MdnsServiceName makes mDNS service name from the provided mDNS service type and protocol.
//
// Examples:
//   - _ntp._udp - NTP service over UDP protocol.
func MdnsServiceName(serviceType MdnsServiceType, proto MdnsProto) string {
	return strings.Join([]string{serviceType.String(), proto.String()}, ".")
}
