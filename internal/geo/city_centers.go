package geo

// cityCenters holds reference coordinates for the destinations the catalog
// covers. Used to discard mis-geocoded rows; a city absent here simply skips
// distance validation.
var cityCenters = map[string]Point{
	// Asia
	"kuala lumpur":     {3.1390, 101.6869},
	"penang":           {5.4164, 100.3327},
	"langkawi":         {6.3500, 99.8000},
	"singapore":        {1.3521, 103.8198},
	"bangkok":          {13.7563, 100.5018},
	"phuket":           {7.8804, 98.3923},
	"chiang mai":       {18.7883, 98.9853},
	"krabi":            {8.0863, 98.9063},
	"bali":             {-8.4095, 115.1889},
	"jakarta":          {-6.2088, 106.8456},
	"yogyakarta":       {-7.7956, 110.3695},
	"tokyo":            {35.6762, 139.6503},
	"kyoto":            {35.0116, 135.7681},
	"osaka":            {34.6937, 135.5023},
	"hiroshima":        {34.3853, 132.4553},
	"seoul":            {37.5665, 126.9780},
	"busan":            {35.1796, 129.0756},
	"jeju island":      {33.4996, 126.5312},
	"hanoi":            {21.0285, 105.8542},
	"ho chi minh city": {10.8231, 106.6297},
	"da nang":          {16.0544, 108.2022},
	"siem reap":        {13.3671, 103.8448},

	// Europe
	"paris":      {48.8566, 2.3522},
	"nice":       {43.7102, 7.2620},
	"lyon":       {45.7640, 4.8357},
	"marseille":  {43.2965, 5.3698},
	"rome":       {41.9028, 12.4964},
	"venice":     {45.4408, 12.3155},
	"florence":   {43.7696, 11.2558},
	"milan":      {45.4642, 9.1900},
	"naples":     {40.8518, 14.2681},
	"barcelona":  {41.3851, 2.1734},
	"madrid":     {40.4168, -3.7038},
	"seville":    {37.3891, -5.9845},
	"valencia":   {39.4699, -0.3763},
	"london":     {51.5074, -0.1278},
	"edinburgh":  {55.9533, -3.1883},
	"liverpool":  {53.4084, -2.9916},
	"berlin":     {52.5200, 13.4050},
	"munich":     {48.1351, 11.5820},
	"frankfurt":  {50.1109, 8.6821},
	"amsterdam":  {52.3676, 4.9041},
	"rotterdam":  {51.9225, 4.4792},
	"zurich":     {47.3769, 8.5417},
	"geneva":     {46.2044, 6.1432},
	"interlaken": {46.6863, 7.8632},
	"athens":     {37.9838, 23.7275},
	"santorini":  {36.3932, 25.4615},
	"mykonos":    {37.4467, 25.3289},
	"lisbon":     {38.7223, -9.1393},
	"porto":      {41.1579, -8.6291},
	"prague":     {50.0755, 14.4378},

	// Americas
	"new york":         {40.7128, -74.0060},
	"los angeles":      {34.0522, -118.2437},
	"san francisco":    {37.7749, -122.4194},
	"las vegas":        {36.1699, -115.1398},
	"miami":            {25.7617, -80.1918},
	"orlando":          {28.5383, -81.3792},
	"toronto":          {43.6532, -79.3832},
	"vancouver":        {49.2827, -123.1207},
	"montreal":         {45.5017, -73.5673},
	"rio de janeiro":   {-22.9068, -43.1729},
	"são paulo":        {-23.5505, -46.6333},
	"sao paulo":        {-23.5505, -46.6333},
	"cancun":           {21.1619, -86.8515},
	"mexico city":      {19.4326, -99.1332},
	"playa del carmen": {20.6296, -87.0739},
	"cusco":            {-13.5319, -71.9675},
	"lima":             {-12.0464, -77.0428},
	"buenos aires":     {-34.6037, -58.3816},

	// Middle East & Africa
	"dubai":           {25.2048, 55.2708},
	"abu dhabi":       {24.4539, 54.3773},
	"istanbul":        {41.0082, 28.9784},
	"cappadocia":      {38.6431, 34.8289},
	"cairo":           {30.0444, 31.2357},
	"luxor":           {25.6872, 32.6396},
	"sharm el sheikh": {27.9158, 34.3300},
	"marrakech":       {31.6295, -7.9811},
	"casablanca":      {33.5731, -7.5898},
	"cape town":       {-33.9249, 18.4241},

	// Oceania
	"sydney":     {-33.8688, 151.2093},
	"melbourne":  {-37.8136, 144.9631},
	"gold coast": {-28.0167, 153.4000},
	"auckland":   {-36.8485, 174.7633},
	"queenstown": {-45.0312, 168.6626},
}
