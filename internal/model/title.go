package model

// Title categories used by the streaming catalog.
const (
	TitleRecommend = "recommend"
	TitleNew       = "new"
	TitleOriginal  = "original"
	TitleTrending  = "trending"
)

// Title is one entry of the streaming catalog.
type Title struct {
	ID            string `json:"id" yaml:"id"`
	Type          string `json:"type" yaml:"type"`
	Title         string `json:"title" yaml:"title"`
	Description   string `json:"description,omitempty" yaml:"description"`
	SubTitle      string `json:"subTitle,omitempty" yaml:"subTitle"`
	CardImg       string `json:"cardImg,omitempty" yaml:"cardImg"`
	BackgroundImg string `json:"backgroundImg,omitempty" yaml:"backgroundImg"`
	TitleImg      string `json:"titleImg,omitempty" yaml:"titleImg"`
}

// TitleShelves is the catalog partitioned by category.
type TitleShelves struct {
	Recommend []Title `json:"recommend"`
	New       []Title `json:"new"`
	Original  []Title `json:"original"`
	Trending  []Title `json:"trending"`
}
