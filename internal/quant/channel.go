package quant

// Channel identifies one of the four 8-bit components of a packed
// 0xAARRGGBB color.
type Channel uint8

const (
	ChannelAlpha Channel = iota
	ChannelRed
	ChannelGreen
	ChannelBlue
)

// Component extracts c's component from a packed ARGB value.
func (c Channel) Component(argb uint32) uint8 {
	switch c {
	case ChannelAlpha:
		return uint8(argb >> 24)
	case ChannelRed:
		return uint8(argb >> 16)
	case ChannelGreen:
		return uint8(argb >> 8)
	default:
		return uint8(argb)
	}
}

func (c Channel) String() string {
	switch c {
	case ChannelAlpha:
		return "alpha"
	case ChannelRed:
		return "red"
	case ChannelGreen:
		return "green"
	case ChannelBlue:
		return "blue"
	}
	return "unknown"
}
