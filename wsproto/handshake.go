package wsproto

import "github.com/opnet-network/indexer/errs"

const maxClientNameLen = 64

// HandshakeRequest is the handshake payload a client must send first,
// before any other opcode is accepted on the connection.
type HandshakeRequest struct {
	ProtocolVersion uint32
	ClientName      string
	ClientVersion   uint32
}

// HandshakeResponse is the server's reply, binding a session id to the
// connection.
type HandshakeResponse struct {
	ProtocolVersion    uint32
	SessionID          [16]byte
	ServerVersion      uint32
	CurrentBlockHeight uint64
	ChainID            uint32
}

func validateHandshake(req HandshakeRequest) error {
	if len(req.ClientName) > maxClientNameLen {
		return errs.Wrap(errs.KindValidation, "client_name exceeds 64 bytes", nil)
	}
	return nil
}
