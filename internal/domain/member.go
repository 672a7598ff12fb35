package domain

// ChannelName labels a communication scope. Channels have no representation
// besides the memberships that share the label.
type ChannelName string

// Membership is a connection's place in the channel table.
type Membership struct {
	Channel ChannelName
	Muted   bool
}
