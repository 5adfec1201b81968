package rpc

//go:generate colgen -imports=github.com/daniilsolovey/trading-admin/internal/domain -funcpkg=domain
//colgen:PostSummary,Room
//colgen:PostSummary:Map(domain.Post),Index(PostID)
//colgen:Room:Map(domain),Index(RoomID)
