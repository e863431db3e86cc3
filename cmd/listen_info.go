package cmd

import (
	"net"
)

type listenInfo struct {
	Binding string
	Access  string
}

func isDigitsOnly(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

// buildListenInfo turns a listen address into the URL the server binds and
// the URL a user on this host would open. Unparseable input is returned as
// is with no access URL.
func buildListenInfo(listen string) listenInfo {
	if isDigitsOnly(listen) {
		listen = ":" + listen
	}
	host, port, err := net.SplitHostPort(listen)
	if err != nil || !isDigitsOnly(port) {
		return listenInfo{Binding: listen}
	}

	if host == "" || host == "0.0.0.0" || host == "::" {
		return listenInfo{
			Binding: "http://" + net.JoinHostPort("0.0.0.0", port),
			Access:  "http://" + net.JoinHostPort(localIPv4(), port),
		}
	}

	url := "http://" + net.JoinHostPort(host, port)
	return listenInfo{Binding: url, Access: url}
}

func localIPv4() string {
	addrs, err := net.InterfaceAddrs()
	if err == nil {
		for _, addr := range addrs {
			ipNet, ok := addr.(*net.IPNet)
			if !ok || ipNet.IP.IsLoopback() {
				continue
			}
			if ip4 := ipNet.IP.To4(); ip4 != nil {
				return ip4.String()
			}
		}
	}
	return "127.0.0.1"
}
