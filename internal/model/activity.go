// Package model はドメインモデルを定義する。
package model

// Activity は課外活動1件のメタデータと参加者名簿を表す。
// 活動名はレジストリのキーとして外部で管理するため、構造体には含めない。
// JSONフィールド名はポータルのAPI契約に合わせる。
type Activity struct {
	Description     string   `json:"description"`      // 活動の説明文
	Schedule        string   `json:"schedule"`         // 開催スケジュール（自由形式の文字列）
	MaxParticipants int      `json:"max_participants"` // 定員（正の整数。現状の挙動では超過を拒否しない）
	Participants    []string `json:"participants"`     // 参加者のメールアドレス一覧
}

// Clone は参加者スライスを含めたディープコピーを返す。
// レジストリのスナップショット返却で内部状態への参照漏れを防ぐために使う。
func (a Activity) Clone() Activity {
	participants := make([]string, len(a.Participants))
	copy(participants, a.Participants)

	return Activity{
		Description:     a.Description,
		Schedule:        a.Schedule,
		MaxParticipants: a.MaxParticipants,
		Participants:    participants,
	}
}

// HasParticipant は指定されたメールアドレスが名簿に含まれるかを返す。
// 正規化は行わず、完全一致で判定する。
func (a Activity) HasParticipant(email string) bool {
	for _, p := range a.Participants {
		if p == email {
			return true
		}
	}
	return false
}
