package probe

// Winsockの定数です。
const (
	solSocket  int32 = 0xFFFF
	soType     int32 = 0x1008
	sockStream int32 = 1

	// sioTCPInfoは、SIO_TCP_INFO の制御コードです（Windows 10 1703以降）。
	sioTCPInfo uint32 = 0xD8000027

	// tcpInfoVersion0は、入力バッファで TCP_INFO_v0 を選択する値です。
	tcpInfoVersion0 uint32 = 0
)
