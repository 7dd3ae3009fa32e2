package sysnet

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestMdnsServiceName(t *testing.T) {
	require.Equal(t, "_ntp._udp", MdnsServiceName(MdnsServiceTypeNTP, MdnsProtoUDP))
	require.Equal(t, "_http._tcp", MdnsServiceName(MdnsServiceTypeHTTP, MdnsProtoTCP))
	require.Equal(t, "<none>.<none>", MdnsServiceName(MdnsServiceType(42), MdnsProto(42)))
}
