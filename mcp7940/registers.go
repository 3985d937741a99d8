package mcp7940

const (
	Address       = 0x6F // I2C address for MCP7940
	Time          = 0x00 // Time registers starting with seconds
	Seconds       = 0x00 // Seconds register, also holds the oscillator start bit
	Weekday       = 0x03 // Weekday register, also holds the battery backup enable bit
	Control       = 0x07 // Control register
	Alarm0Time    = 0x0A // Alarm 0 registers starting with seconds
	Alarm0Weekday = 0x0D // Alarm 0 weekday, match mask, interrupt flag and polarity
	Alarm1Time    = 0x11 // Alarm 1 registers starting with seconds
	Alarm1Weekday = 0x14 // Alarm 1 weekday, match mask and interrupt flag
)

// bit positions
const (
	bitST     = 7 // Seconds: oscillator start
	bitVBATEN = 3 // Weekday: external battery backup supply enable
	bitLPYR   = 5 // Month: leap year, read-only
	bitALM0EN = 4 // Control: alarm 0 enable
	bitALM1EN = 5 // Control: alarm 1 enable
	bitALMPOL = 7 // Alarm0Weekday: alarm output polarity
	bitALMIF  = 3 // AlarmNWeekday: alarm interrupt flag
)

// matchAll is the ALMxMSK code comparing seconds, minutes, hour, weekday, date and month.
const matchAll = 0b0111_0000
