package nic

import (
	"context"
	"fmt"
	"net"
)

// DialContextは、指定したNICのアドレスを送信元としてTCP接続を開きます。
type DialContext struct {
	dialer *net.Dialer
}

// DialContextConfigは、DialContextの設定です。
type DialContextConfig struct {
	// NICは、送信元にするネットワークインターフェース名です（例: eth0）。
	NIC string
}

// NewDialContextは、DialContextを返却します。
//
// NICに割り当てられたIPv4アドレスのうち、ループバック以外のものを優先して送信元にします。
func NewDialContext(c DialContextConfig) (*DialContext, error) {
	localAddr, err := getLocalAddrFromNIC(c.NIC)
	if err != nil {
		return nil, fmt.Errorf("get local address: %w", err)
	}
	return &DialContext{dialer: &net.Dialer{
		LocalAddr: localAddr,
	}}, nil
}

// LocalAddrは、送信元のアドレスを返します。
func (n *DialContext) LocalAddr() net.Addr {
	return n.dialer.LocalAddr
}

func (n *DialContext) DialContext(ctx context.Context, network string, address string) (net.Conn, error) {
	return n.dialer.DialContext(ctx, network, address)
}

func getLocalAddrFromNIC(nicName string) (*net.TCPAddr, error) {
	iface, err := net.InterfaceByName(nicName)
	if err != nil {
		return nil, fmt.Errorf("get interface by name: %w", err)
	}

	addrs, err := iface.Addrs()
	if err != nil {
		return nil, fmt.Errorf("get interface addresses: %w", err)
	}

	var loopback *net.TCPAddr
	for _, addr := range addrs {
		ipNet, ok := addr.(*net.IPNet)
		if !ok || ipNet.IP.To4() == nil {
			continue
		}
		if !ipNet.IP.IsLoopback() {
			return &net.TCPAddr{IP: ipNet.IP}, nil
		}
		if loopback == nil {
			loopback = &net.TCPAddr{IP: ipNet.IP}
		}
	}
	if loopback != nil {
		return loopback, nil
	}

	return nil, fmt.Errorf("no valid IPv4 address found for interface %s", nicName)
}
