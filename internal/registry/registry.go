// Package registry は課外活動のインメモリレジストリを提供する。
// プロセス起動時にシードデータから1回構築され、プロセスの生存期間中は
// 名簿の増減以外の変更を受けない。活動の追加・削除は行わない。
package registry

import (
	"context"
	"sync"

	"github.com/hitoshi/mergington/internal/model"
)

// Registry は活動名をキーとする共有インメモリストア。
// グローバル変数ではなく、ハンドラーへ明示的に注入して使う。
// mapへのアクセスはRWMutexで直列化する。
type Registry struct {
	mu         sync.RWMutex
	activities map[string]*model.Activity
}

// New はシードデータからRegistryを生成する。
// シードはディープコピーして保持するため、呼び出し元のmapを後から
// 変更してもレジストリの状態には影響しない。
func New(seed map[string]model.Activity) *Registry {
	r := &Registry{}
	r.load(seed)
	return r
}

// load はシードデータをコピーして内部mapを置き換える。
func (r *Registry) load(seed map[string]model.Activity) {
	activities := make(map[string]*model.Activity, len(seed))
	for name, activity := range seed {
		cloned := activity.Clone()
		activities[name] = &cloned
	}

	r.mu.Lock()
	r.activities = activities
	r.mu.Unlock()
}

// Reset はレジストリをシードデータの状態に戻す。
// テストで各ケース実行前の初期化に使う。
func (r *Registry) Reset(seed map[string]model.Activity) {
	r.load(seed)
}

// List は全活動のスナップショットを返す。
// 返却するmapと名簿スライスはコピーであり、呼び出し元が変更しても
// レジストリの状態には影響しない。フィルタもページネーションも行わない。
func (r *Registry) List(ctx context.Context) map[string]model.Activity {
	r.mu.RLock()
	defer r.mu.RUnlock()

	snapshot := make(map[string]model.Activity, len(r.activities))
	for name, activity := range r.activities {
		snapshot[name] = activity.Clone()
	}
	return snapshot
}

// Enroll は参加者を活動の名簿に追加する。
// 活動が存在しない場合はACTIVITY_NOT_FOUND、既に名簿に含まれる場合は
// ALREADY_REGISTEREDを返す。定員チェックは行わず、空文字列のemailも
// 有効な参加者識別子として受け付ける。
// エラー時に名簿が部分的に変更されることはない。
func (r *Registry) Enroll(ctx context.Context, activityName, email string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	activity, ok := r.activities[activityName]
	if !ok {
		return model.NewActivityNotFoundError()
	}

	if activity.HasParticipant(email) {
		return model.NewAlreadyRegisteredError()
	}

	activity.Participants = append(activity.Participants, email)
	return nil
}

// Withdraw は参加者を活動の名簿から取り除く。
// 活動が存在しない場合はACTIVITY_NOT_FOUND、名簿に含まれない場合は
// NOT_REGISTEREDを返す。エラー時に名簿が変更されることはない。
func (r *Registry) Withdraw(ctx context.Context, activityName, email string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	activity, ok := r.activities[activityName]
	if !ok {
		return model.NewActivityNotFoundError()
	}

	for i, p := range activity.Participants {
		if p == email {
			activity.Participants = append(activity.Participants[:i], activity.Participants[i+1:]...)
			return nil
		}
	}

	return model.NewNotRegisteredError()
}
