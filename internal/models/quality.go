package models

// QualityOfLife holds the four normalized 0-100 sub-scores, their average,
// and the rounded raw indicator inputs they were derived from.
type QualityOfLife struct {
	Overall             int `json:"overall"`
	CostOfLiving        int `json:"costOfLiving"`
	LifeExpectancyScore int `json:"lifeExpectancyScore"`
	Education           int `json:"education"`
	Healthcare          int `json:"healthcare"`

	// Raw inputs, rounded for display.
	GDPPerCapita   int `json:"gdpPerCapita"`
	LifeExpectancy int `json:"lifeExpectancy"`
}
