package matcher

import (
	"math"
	"math/rand"
	"net/url"
	"regexp"
	"sort"
	"strconv"
	"strings"
	"sync"
	"time"

	"resume-analyzer-go/internal/analyzer"
	"resume-analyzer-go/internal/types"
)

const jobSearchBaseURL = "https://www.linkedin.com/jobs/search/?keywords="

var yearsOfExperiencePattern = regexp.MustCompile(`(?i)(\d+)\s*(?:years?|yrs?)`)

// roleVariations 每个岗位类别推荐的职位变体，按推荐强度排序。
// 不在表内的类别退化为类别名本身。
var roleVariations = map[string][]string{
	"Software Engineer": {
		"Software Developer",
		"Full Stack Developer",
		"Software Engineer",
		"Web Developer",
		"Application Developer",
	},
	"Data Scientist": {
		"Data Scientist",
		"Data Analyst",
		"Machine Learning Engineer",
		"Research Scientist",
		"Data Engineer",
	},
	"Product Manager": {
		"Product Manager",
		"Product Owner",
		"Program Manager",
		"Technical Product Manager",
		"Growth Product Manager",
	},
	"UX Designer": {
		"UX Designer",
		"UI Designer",
		"Product Designer",
		"User Experience Designer",
		"Digital Designer",
	},
	"DevOps Engineer": {
		"DevOps Engineer",
		"Site Reliability Engineer",
		"Cloud Engineer",
		"Infrastructure Engineer",
		"Platform Engineer",
	},
}

// roleSkillsMap 职位变体对应的典型技能，用于计算匹配关键词
var roleSkillsMap = map[string][]string{
	"Software Developer": {"JavaScript", "Python", "React", "Node.js", "Git", "HTML", "CSS"},
	"Data Scientist":     {"Python", "SQL", "Machine Learning", "Pandas", "Statistics", "Tableau"},
	"Product Manager":    {"Analytics", "Agile", "Roadmap", "Stakeholder Management", "User Research"},
	"UX Designer":        {"Figma", "Sketch", "Prototyping", "User Research", "Design Systems"},
	"DevOps Engineer":    {"AWS", "Docker", "Kubernetes", "Jenkins", "Terraform", "Linux"},
}

// defaultRoleSkills 变体不在技能表里时的通用技能
var defaultRoleSkills = []string{"JavaScript", "Python", "SQL", "Git"}

// techStack 按具体技术栈推荐的职位，至少命中2项必备技能才会产出
type techStack struct {
	title    string
	required []string
}

// 切片保证产出顺序稳定
var techStacks = []techStack{
	{"React Developer", []string{"react", "javascript", "html", "css", "node"}},
	{"Python Developer", []string{"python", "django", "flask", "fastapi", "sql"}},
	{"Java Developer", []string{"java", "spring", "hibernate", "maven", "sql"}},
	{"Cloud Engineer", []string{"aws", "azure", "gcp", "docker", "kubernetes"}},
	{"Machine Learning Engineer", []string{"python", "tensorflow", "pytorch", "scikit-learn", "pandas"}},
	{"Mobile Developer", []string{"react native", "flutter", "swift", "kotlin", "mobile"}},
}

// Matcher 岗位匹配器。
// 匹配分 = 确定性的技能覆盖率基准分加上[-5,+5)的随机扰动，
// 随机源在构造时注入，测试传入固定种子即可得到可复现的输出。
type Matcher struct {
	maxMatches int

	mu  sync.Mutex
	rng *rand.Rand
}

// NewMatcher 创建岗位匹配器。rng为nil时使用时间种子。
func NewMatcher(maxMatches int, rng *rand.Rand) *Matcher {
	if maxMatches <= 0 {
		maxMatches = 6
	}
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	return &Matcher{maxMatches: maxMatches, rng: rng}
}

// GenerateMatches 为一份简历生成岗位匹配列表。
// 角色变体匹配和技术栈匹配合并后按分数稳定降序排序，返回前maxMatches条。
func (m *Matcher) GenerateMatches(resume *types.ParsedResume) []types.JobMatch {
	detectedRole := analyzer.DetectRole(resume)
	level := DetermineExperienceLevel(resume)

	skills := make([]string, len(resume.Skills))
	for i, s := range resume.Skills {
		skills[i] = strings.ToLower(s)
	}

	matches := m.roleBasedMatches(detectedRole, level, skills)
	matches = append(matches, m.skillBasedMatches(level, skills)...)

	sort.SliceStable(matches, func(i, j int) bool {
		return matches[i].MatchScore > matches[j].MatchScore
	})

	if len(matches) > m.maxMatches {
		matches = matches[:m.maxMatches]
	}
	return matches
}

// DetermineExperienceLevel 估算资历级别。
// 取全文里声称的最大年限和工作经历条数×1.5的较大者。
func DetermineExperienceLevel(resume *types.ParsedResume) string {
	totalYears := 0
	for _, match := range yearsOfExperiencePattern.FindAllStringSubmatch(resume.RawText, -1) {
		if years, err := strconv.Atoi(match[1]); err == nil && years > totalYears {
			totalYears = years
		}
	}

	estimated := math.Max(float64(totalYears), float64(len(resume.WorkExperience))*1.5)

	switch {
	case estimated < 1:
		return "Entry Level"
	case estimated < 3:
		return "Junior"
	case estimated < 6:
		return "Mid Level"
	case estimated < 10:
		return "Senior"
	default:
		return "Lead/Principal"
	}
}

// roleBasedMatches 按岗位类别的职位变体生成匹配。
// 排序靠后的变体每档降5分，下限60，体现推荐强度衰减。
func (m *Matcher) roleBasedMatches(role, level string, skills []string) []types.JobMatch {
	variations, ok := roleVariations[role]
	if !ok {
		variations = []string{role}
	}

	matches := make([]types.JobMatch, 0, len(variations))
	for idx, variation := range variations {
		matchingSkills := matchingSkillsForRole(skills, variation)
		score := m.matchScore(len(matchingSkills), len(skills))

		score -= idx * 5
		if score < 60 {
			score = 60
		}

		keywords := matchingSkills
		if len(keywords) > 6 {
			keywords = keywords[:6]
		}

		title := level + " " + variation
		matches = append(matches, types.JobMatch{
			Title:      title,
			Level:      level,
			Keywords:   keywords,
			SearchURL:  jobSearchURL(title),
			MatchScore: score,
		})
	}
	return matches
}

// skillBasedMatches 按具体技术栈生成匹配，命中必备技能不足2项的跳过
func (m *Matcher) skillBasedMatches(level string, skills []string) []types.JobMatch {
	var matches []types.JobMatch
	for _, stack := range techStacks {
		var matching []string
		for _, required := range stack.required {
			if anySkillContains(skills, required) {
				matching = append(matching, required)
			}
		}
		if len(matching) < 2 {
			continue
		}

		title := level + " " + stack.title
		matches = append(matches, types.JobMatch{
			Title:      title,
			Level:      level,
			Keywords:   matching,
			SearchURL:  jobSearchURL(title),
			MatchScore: m.matchScore(len(matching), len(stack.required)),
		})
	}
	return matches
}

// matchingSkillsForRole 从职位典型技能中筛出用户已具备的
func matchingSkillsForRole(userSkills []string, role string) []string {
	roleSkills, ok := roleSkillsMap[role]
	if !ok {
		roleSkills = defaultRoleSkills
	}

	matching := []string{}
	for _, skill := range roleSkills {
		if anySkillContains(userSkills, strings.ToLower(skill)) {
			matching = append(matching, skill)
		}
	}
	return matching
}

func anySkillContains(lowerSkills []string, keyword string) bool {
	for _, skill := range lowerSkills {
		if strings.Contains(skill, keyword) {
			return true
		}
	}
	return false
}

// matchScore 技能覆盖率基准分加扰动，结果限制在[50,95]
func (m *Matcher) matchScore(matched, totalRequired int) int {
	if totalRequired < 1 {
		totalRequired = 1
	}
	base := float64(matched) / float64(totalRequired) * 100

	m.mu.Lock()
	jitter := m.rng.Float64()*10 - 5
	m.mu.Unlock()

	score := int(math.Round(base + jitter))
	if score < 50 {
		score = 50
	}
	if score > 95 {
		score = 95
	}
	return score
}

func jobSearchURL(jobTitle string) string {
	return jobSearchBaseURL + url.PathEscape(jobTitle)
}
