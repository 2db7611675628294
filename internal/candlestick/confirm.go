package candlestick

import "PatternSentinel/internal/model"

// Confirm resolves a detection against the following day's close. A bullish
// pattern is confirmed once the next close exceeds the pattern day's high, a
// bearish one once it undercuts the pattern day's low. The most recent bar
// has no next day yet, so it stays pending.
func Confirm(signal model.Signal, index int, s *model.PriceSeries) model.Status {
	if index >= s.LastIndex() {
		return model.StatusPending
	}
	nextClose := s.Close(index + 1)
	if signal == model.SignalBullish {
		if nextClose > s.High(index) {
			return model.StatusConfirmed
		}
		return model.StatusPending
	}
	if nextClose < s.Low(index) {
		return model.StatusConfirmed
	}
	return model.StatusPending
}
