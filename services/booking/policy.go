package booking

import "campuspilot/config"

// PolicyFromConfig builds the recommendation policy from loaded configuration.
func PolicyFromConfig() Policy {
	return Policy{
		RecommendationCap: config.AppConfig.RecommendationCap,
		ShiftStepMinutes:  config.AppConfig.RecommendShiftStep,
		ShiftHorizonMins:  config.AppConfig.RecommendShiftLimit,
		AlternativeScore:  config.AppConfig.RecommendRoomScore,
		ProactiveScore:    config.AppConfig.ProactiveScore,
		FreeDayScanDays:   config.AppConfig.FreeDayScanDays,
		DayStartMinute:    config.AppConfig.DayStartMinute,
		DayEndMinute:      config.AppConfig.DayEndMinute,
	}
}
