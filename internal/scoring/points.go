package scoring

// AchievementLevel is the geographic scope of a competition.
type AchievementLevel string

const (
	LevelSchool        AchievementLevel = "school"
	LevelSubdistrict   AchievementLevel = "subdistrict"
	LevelDistrict      AchievementLevel = "district"
	LevelProvince      AchievementLevel = "province"
	LevelNational      AchievementLevel = "national"
	LevelInternational AchievementLevel = "international"
)

// AchievementRank is the placement within a competition.
type AchievementRank string

const (
	RankFirst     AchievementRank = "first"
	RankSecond    AchievementRank = "second"
	RankThird     AchievementRank = "third"
	RankHonorable AchievementRank = "honorable"
)

// AchievementLevels lists all levels from narrowest to widest scope.
var AchievementLevels = []AchievementLevel{
	LevelSchool,
	LevelSubdistrict,
	LevelDistrict,
	LevelProvince,
	LevelNational,
	LevelInternational,
}

// AchievementRanks lists all ranks from best to worst placement.
var AchievementRanks = []AchievementRank{
	RankFirst,
	RankSecond,
	RankThird,
	RankHonorable,
}

// pointsMatrix is the fixed (level, rank) → points table. Points decrease
// with narrower scope and lower placement.
var pointsMatrix = map[AchievementLevel]map[AchievementRank]int{
	LevelInternational: {RankFirst: 100, RankSecond: 90, RankThird: 80, RankHonorable: 70},
	LevelNational:      {RankFirst: 80, RankSecond: 70, RankThird: 60, RankHonorable: 50},
	LevelProvince:      {RankFirst: 60, RankSecond: 50, RankThird: 40, RankHonorable: 30},
	LevelDistrict:      {RankFirst: 40, RankSecond: 35, RankThird: 30, RankHonorable: 20},
	LevelSubdistrict:   {RankFirst: 20, RankSecond: 15, RankThird: 10, RankHonorable: 5},
	LevelSchool:        {RankFirst: 10, RankSecond: 8, RankThird: 6, RankHonorable: 4},
}

// AchievementPoints returns the point value for a (level, rank) pair.
// An unknown pair yields 0 rather than an error; callers that care about
// data quality should log such achievements as unscored.
func AchievementPoints(level AchievementLevel, rank AchievementRank) int {
	return pointsMatrix[level][rank]
}

// IsValidLevel reports whether level is one of the six known scopes.
func IsValidLevel(level AchievementLevel) bool {
	_, ok := pointsMatrix[level]
	return ok
}

// IsValidRank reports whether rank is one of the four known placements.
func IsValidRank(rank AchievementRank) bool {
	for _, r := range AchievementRanks {
		if r == rank {
			return true
		}
	}
	return false
}
