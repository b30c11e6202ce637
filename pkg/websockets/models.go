package websockets

import "github.com/courtside/prop-auctions/pkg/money"

// MessageType defines the type of a WebSocket message.
type MessageType string

const (
	// MessageTypeBalanceUpdate is for messages that update account balances.
	MessageTypeBalanceUpdate MessageType = "balanceUpdate"
	// MessageTypeAuctionSold announces that an auction found a buyer.
	MessageTypeAuctionSold MessageType = "auctionSold"
)

// Message represents a generic WebSocket message. Recipient, when set,
// restricts delivery to that account's connections; an empty Recipient
// broadcasts to everyone. It routes the message and is not part of the frame.
type Message struct {
	Type      MessageType `json:"type"`
	Recipient string      `json:"-"`
	Payload   interface{} `json:"payload"`
}

// BalanceUpdatePayload is the payload for a balanceUpdate message.
type BalanceUpdatePayload struct {
	AccountID  string             `json:"account_id"`
	AuctionID  string             `json:"auction_id,omitempty"`
	Currency   money.CurrencyKind `json:"currency"`
	Change     money.Amount       `json:"change"`
	NewBalance money.Amount       `json:"new_balance"`
}

// AuctionSoldPayload is the payload for an auctionSold message.
type AuctionSoldPayload struct {
	AuctionID string `json:"auction_id"`
	SellerID  string `json:"seller_id"`
	BuyerID   string `json:"buyer_id"`
}
