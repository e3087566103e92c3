package domain

import "time"

// PostAuthor denormalized author snapshot taken from the verified token at
// post time
type PostAuthor struct {
	ID              string `bson:"id" json:"id"`
	Name            string `bson:"name" json:"name"`
	Role            string `bson:"role" json:"role"`
	Email           string `bson:"email,omitempty" json:"email,omitempty"`
	ProfileImage    string `bson:"profile_image,omitempty" json:"profileImage,omitempty"`
	DesignationName string `bson:"designation_name,omitempty" json:"designationName,omitempty"`
	DepartmentName  string `bson:"department_name,omitempty" json:"departmentName,omitempty"`
}

// PollOption one answer with the ids of the users who picked it
type PollOption struct {
	ID    string   `bson:"id" json:"id"`
	Text  string   `bson:"text" json:"text"`
	Votes []string `bson:"votes" json:"votes"`
}

// Poll optional poll attached to a post
type Poll struct {
	Question string       `bson:"question" json:"question"`
	Options  []PollOption `bson:"options" json:"options"`
}

// CommentUser comment author snapshot
type CommentUser struct {
	ID           string `bson:"id" json:"id"`
	Name         string `bson:"name" json:"name"`
	ProfileImage string `bson:"profile_image,omitempty" json:"profileImage,omitempty"`
}

// PostComment one comment on a post
type PostComment struct {
	User      CommentUser `bson:"user" json:"user"`
	Text      string      `bson:"text" json:"text"`
	CreatedAt time.Time   `bson:"created_at" json:"createdAt"`
}

// Post a social feed entry. Media fields carry URLs only; the blobs live in
// external object storage.
type Post struct {
	ID        string        `bson:"_id,omitempty" json:"id"`
	Content   string        `bson:"content" json:"content"`
	Images    []string      `bson:"images" json:"images"`
	Videos    []string      `bson:"videos" json:"videos"`
	Author    PostAuthor    `bson:"author" json:"author"`
	Poll      *Poll         `bson:"poll,omitempty" json:"poll,omitempty"`
	Tags      []string      `bson:"tags" json:"tags"`
	Likes     []string      `bson:"likes" json:"likes"`
	Views     []string      `bson:"views" json:"views"`
	Comments  []PostComment `bson:"comments" json:"comments"`
	CreatedAt time.Time     `bson:"created_at" json:"createdAt"`
}

// SocialVisit last time a user opened the social feed
type SocialVisit struct {
	UserID       string    `json:"userId"`
	Name         string    `json:"name"`
	Role         string    `json:"role"`
	ProfileImage string    `json:"profileImage,omitempty"`
	LastVisit    time.Time `json:"lastVisit"`
}
