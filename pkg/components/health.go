package components

// HealthComponent 存储实体的生命值信息
// 攻击动画命中目标后由战斗系统扣减
type HealthComponent struct {
	CurrentHealth int  // 当前生命值
	MaxHealth     int  // 最大生命值
	HitCount      int  // 被命中次数
	Dead          bool // 生命值归零后置位
}
